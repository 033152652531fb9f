package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bibbank/agricredit/internal/domain/event"
	"github.com/bibbank/agricredit/internal/domain/port"
	pkgkafka "github.com/bibbank/agricredit/pkg/kafka"
)

// DefaultTopic receives all assessment events.
const DefaultTopic = "agricredit-events"

var _ port.EventPublisher = (*EventPublisher)(nil)

// MessageProducer is satisfied by *pkgkafka.Producer.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka.
type EventPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher for topic. An empty topic selects DefaultTopic.
func NewEventPublisher(producer MessageProducer, topic string, logger *slog.Logger) *EventPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish serialises and sends domain events keyed by aggregate ID, so all
// events of one assessment land on the same partition.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"event_id":       evt.EventID(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish to topic %s: %w", p.topic, err)
	}
	return nil
}
