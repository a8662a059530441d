package workflow

import (
	"context"
	"encoding/json"
	"time"

	"offerstack-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Outbound event kinds dispatched to the workflow engine.
const (
	KindLeadQualification    = "lead_qualification"
	KindDiagnosticCompletion = "diagnostic_completion"
)

// OutboundEvent is the envelope queued on the outbound bus. Mutating request
// paths enqueue and return; the dispatcher delivers with retries.
type OutboundEvent struct {
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Bus publishes outbound events on an in-process watermill channel.
type Bus struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewBus(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) *Bus {
	return &Bus{
		pubSub: pubSub,
		topic:  topic,
		logger: log,
	}
}

// PublishLead queues a lead-qualification event. Failures are logged, never
// surfaced: the lead is already persisted and the webhook is best-effort.
func (b *Bus) PublishLead(ctx context.Context, event LeadEvent) {
	b.publish(ctx, KindLeadQualification, event)
}

// PublishDiagnostic queues a diagnostic-completion event.
func (b *Bus) PublishDiagnostic(ctx context.Context, event DiagnosticEvent) {
	b.publish(ctx, KindDiagnosticCompletion, event)
}

func (b *Bus) publish(ctx context.Context, kind string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("WORKFLOW", "Failed to marshal outbound event", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return
	}

	envelope := OutboundEvent{
		Kind:       kind,
		Payload:    raw,
		OccurredAt: time.Now(),
	}
	encoded, err := json.Marshal(envelope)
	if err != nil {
		b.logger.Error("WORKFLOW", "Failed to marshal outbound envelope", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), encoded)
	if err := b.pubSub.Publish(b.topic, msg); err != nil {
		b.logger.Error("WORKFLOW", "Failed to publish outbound event", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}
