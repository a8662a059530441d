package events

import (
	"context"
	"time"

	"offerstack-be/internal/pkg/logger"
	pkgEvents "offerstack-be/pkg/events"
	pkgNats "offerstack-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishGuaranteeActivated(ctx context.Context, instanceId, templateId uuid.UUID, clientEmail string, purchaseAmount float64)
	PublishGuaranteeResolved(ctx context.Context, instanceId uuid.UUID, clientEmail, status string, payoutAmount float64)
	PublishEnrollmentCreated(ctx context.Context, enrollmentId, campaignId uuid.UUID, clientEmail, source string)
	PublishEnrollmentResolved(ctx context.Context, enrollmentId, campaignId uuid.UUID, clientEmail, status string)
	PublishLeadCreated(ctx context.Context, leadId uuid.UUID, email, linkedInHandle, source string)
	PublishChatEscalated(ctx context.Context, sessionKey, visitorEmail string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishGuaranteeActivated emits GUARANTEE_ACTIVATED when an instance is created
func (p *NatsPublisher) PublishGuaranteeActivated(ctx context.Context, instanceId, templateId uuid.UUID, clientEmail string, purchaseAmount float64) {
	p.publish(ctx, "GUARANTEE_ACTIVATED", map[string]interface{}{
		"instance_id":     instanceId,
		"template_id":     templateId,
		"client_email":    clientEmail,
		"purchase_amount": purchaseAmount,
		"entity_type":     "guarantee_instance",
		"entity_id":       instanceId.String(),
	})
}

// PublishGuaranteeResolved emits GUARANTEE_RESOLVED on any terminal transition
func (p *NatsPublisher) PublishGuaranteeResolved(ctx context.Context, instanceId uuid.UUID, clientEmail, status string, payoutAmount float64) {
	p.publish(ctx, "GUARANTEE_RESOLVED", map[string]interface{}{
		"instance_id":   instanceId,
		"client_email":  clientEmail,
		"status":        status,
		"payout_amount": payoutAmount,
		"entity_type":   "guarantee_instance",
		"entity_id":     instanceId.String(),
	})
}

// PublishEnrollmentCreated emits CAMPAIGN_ENROLLMENT_CREATED
func (p *NatsPublisher) PublishEnrollmentCreated(ctx context.Context, enrollmentId, campaignId uuid.UUID, clientEmail, source string) {
	p.publish(ctx, "CAMPAIGN_ENROLLMENT_CREATED", map[string]interface{}{
		"enrollment_id": enrollmentId,
		"campaign_id":   campaignId,
		"client_email":  clientEmail,
		"source":        source,
		"entity_type":   "campaign_enrollment",
		"entity_id":     enrollmentId.String(),
	})
}

// PublishEnrollmentResolved emits CAMPAIGN_ENROLLMENT_RESOLVED
func (p *NatsPublisher) PublishEnrollmentResolved(ctx context.Context, enrollmentId, campaignId uuid.UUID, clientEmail, status string) {
	p.publish(ctx, "CAMPAIGN_ENROLLMENT_RESOLVED", map[string]interface{}{
		"enrollment_id": enrollmentId,
		"campaign_id":   campaignId,
		"client_email":  clientEmail,
		"status":        status,
		"entity_type":   "campaign_enrollment",
		"entity_id":     enrollmentId.String(),
	})
}

// PublishLeadCreated emits LEAD_CREATED for new outreach prospects
func (p *NatsPublisher) PublishLeadCreated(ctx context.Context, leadId uuid.UUID, email, linkedInHandle, source string) {
	p.publish(ctx, "LEAD_CREATED", map[string]interface{}{
		"lead_id":         leadId,
		"email":           email,
		"linkedin_handle": linkedInHandle,
		"source":          source,
		"entity_type":     "lead",
		"entity_id":       leadId.String(),
	})
}

// PublishChatEscalated emits CHAT_ESCALATED when the workflow engine hands off
func (p *NatsPublisher) PublishChatEscalated(ctx context.Context, sessionKey, visitorEmail string) {
	p.publish(ctx, "CHAT_ESCALATED", map[string]interface{}{
		"session_key":   sessionKey,
		"visitor_email": visitorEmail,
		"entity_type":   "chat_session",
		"entity_id":     sessionKey,
	})
}
