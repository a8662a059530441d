package workflow

import (
	"context"
	"encoding/json"
	"time"

	"offerstack-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cenkalti/backoff/v4"
)

// Dispatcher drains the outbound bus and delivers each event to the workflow
// engine with bounded exponential retry.
type Dispatcher struct {
	pubSub *gochannel.GoChannel
	topic  string
	client *Client
	logger logger.ILogger
}

func NewDispatcher(pubSub *gochannel.GoChannel, topic string, client *Client, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		pubSub: pubSub,
		topic:  topic,
		client: client,
		logger: log,
	}
}

// Run subscribes and processes messages until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	messages, err := d.pubSub.Subscribe(ctx, d.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			d.process(ctx, msg)
		}
	}()

	return nil
}

func (d *Dispatcher) process(ctx context.Context, msg *message.Message) {
	var envelope OutboundEvent
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		d.logger.Error("WORKFLOW", "Dropping malformed outbound event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid on retry
		return
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 2 * time.Second
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = 2 * time.Minute

	deliver := func() error {
		return d.dispatch(ctx, envelope)
	}

	if err := backoff.Retry(deliver, backoff.WithContext(policy, ctx)); err != nil {
		// Retries exhausted. Ack anyway: the event is advisory and
		// redelivering forever would wedge the channel.
		d.logger.Error("WORKFLOW", "Outbound event delivery failed", map[string]interface{}{
			"kind":  envelope.Kind,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	d.logger.Info("WORKFLOW", "Outbound event delivered", map[string]interface{}{
		"kind": envelope.Kind,
	})
	msg.Ack()
}

func (d *Dispatcher) dispatch(ctx context.Context, envelope OutboundEvent) error {
	switch envelope.Kind {
	case KindLeadQualification:
		var event LeadEvent
		if err := json.Unmarshal(envelope.Payload, &event); err != nil {
			return backoff.Permanent(err)
		}
		return d.client.NotifyLead(ctx, event)
	case KindDiagnosticCompletion:
		var event DiagnosticEvent
		if err := json.Unmarshal(envelope.Payload, &event); err != nil {
			return backoff.Permanent(err)
		}
		return d.client.NotifyDiagnostic(ctx, event)
	default:
		d.logger.Warn("WORKFLOW", "Unknown outbound event kind", map[string]interface{}{
			"kind": envelope.Kind,
		})
		return nil
	}
}
