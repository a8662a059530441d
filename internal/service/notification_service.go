// FILE: internal/service/notification_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/websocket"
	"offerstack-be/pkg/events"
	pkgNats "offerstack-be/pkg/nats"
)

// NoticeDelivery is the transport that pushes notices to connected admins.
// The websocket hub implements it.
type NoticeDelivery interface {
	Broadcast(notice websocket.Notice)
}

// NotificationService turns domain events from NATS into dashboard notices.
// Every admin sees the same feed, so everything is a broadcast.
type NotificationService struct {
	subscriber *pkgNats.Subscriber
	delivery   NoticeDelivery
	logger     logger.ILogger
}

func NewNotificationService(subscriber *pkgNats.Subscriber, delivery NoticeDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

// Start subscribes to the event stream. The durable consumer picks up where it
// left off after a restart.
func (s *NotificationService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("NOTIFY", "NATS subscriber not configured, dashboard notices disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("events.>", "admin-notice-worker", s.handleEvent)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// The subscriber reports the raw subject as the type.
	eventType := strings.TrimPrefix(event.EventType(), "events.")

	notice, ok := s.buildNotice(eventType, event.Payload())
	if !ok {
		// Unknown events are acked, not retried; a new producer shouldn't
		// wedge the consumer.
		return nil
	}

	notice.CreatedAt = event.Timestamp()
	s.delivery.Broadcast(notice)
	return nil
}

func (s *NotificationService) buildNotice(eventType string, data map[string]interface{}) (websocket.Notice, bool) {
	notice := websocket.Notice{
		Type:       eventType,
		EntityType: stringField(data, "entity_type"),
		EntityId:   stringField(data, "entity_id"),
		Data:       data,
		CreatedAt:  time.Now(),
	}

	switch eventType {
	case "GUARANTEE_ACTIVATED":
		notice.Title = "Guarantee activated"
		notice.Message = fmt.Sprintf("A guarantee was activated for %s", stringField(data, "client_email"))
	case "GUARANTEE_RESOLVED":
		notice.Title = "Guarantee resolved"
		notice.Message = fmt.Sprintf("Guarantee for %s resolved as %s", stringField(data, "client_email"), stringField(data, "status"))
	case "CAMPAIGN_ENROLLMENT_CREATED":
		notice.Title = "New campaign enrollment"
		notice.Message = fmt.Sprintf("%s enrolled in a campaign", stringField(data, "client_email"))
	case "CAMPAIGN_ENROLLMENT_RESOLVED":
		notice.Title = "Campaign enrollment resolved"
		notice.Message = fmt.Sprintf("Enrollment for %s resolved as %s", stringField(data, "client_email"), stringField(data, "status"))
	case "LEAD_CREATED":
		notice.Title = "New outreach lead"
		notice.Message = fmt.Sprintf("Lead %s was added to the pipeline", leadLabel(data))
	case "CHAT_ESCALATED":
		notice.Title = "Chat escalated"
		notice.Message = fmt.Sprintf("A visitor chat needs a human (%s)", chatLabel(data))
	case "SYSTEM_BROADCAST":
		notice.Title = stringField(data, "title")
		notice.Message = stringField(data, "message")
	default:
		return websocket.Notice{}, false
	}

	return notice, true
}

func leadLabel(data map[string]interface{}) string {
	if email := stringField(data, "email"); email != "" {
		return email
	}
	if handle := stringField(data, "linkedin_handle"); handle != "" {
		return handle
	}
	return "unknown"
}

func chatLabel(data map[string]interface{}) string {
	if email := stringField(data, "visitor_email"); email != "" {
		return email
	}
	return "anonymous visitor"
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
