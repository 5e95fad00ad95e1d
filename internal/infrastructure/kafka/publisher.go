package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tallyworks/tally/pkg/events"
	pkgkafka "github.com/tallyworks/tally/pkg/kafka"
)

// Compile-time interface check
var _ events.EventPublisher = (*Publisher)(nil)

// Publisher implements events.EventPublisher using Kafka.
type Publisher struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
}

// NewPublisher creates a new Kafka-based event publisher.
func NewPublisher(producer *pkgkafka.Producer, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
	}
}

// Publish sends domain events to the specified Kafka topic. Messages are keyed
// by aggregate ID so events of one journal or period stay in order.
func (p *Publisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			"topic", topic,
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"tenant_id", evt.TenantID(),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID(),
				"tenant_id":      evt.TenantID(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", topic, err)
	}
	return nil
}

// Close shuts down the Kafka publisher.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
