// Package kafka publishes order events to the audit/webhook topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"grocery/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderEventPublisher writes order lifecycle events to a Kafka topic.
// Publishing is fire-and-forget from the caller's point of view: failures
// are logged here and never fail the committed operation.
type OrderEventPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// orderEventMessage is the wire shape of an order event. Timestamps are Unix
// seconds; agent_id is present only for assignment events.
type orderEventMessage struct {
	Event          string  `json:"event"`
	OrderID        string  `json:"order_id"`
	OrderNumber    string  `json:"order_number"`
	PreviousStatus string  `json:"previous_status,omitempty"`
	NewStatus      string  `json:"new_status,omitempty"`
	AgentID        *string `json:"agent_id,omitempty"`
	ActorID        string  `json:"actor_id"`
	ActorRole      string  `json:"actor_role"`
	Timestamp      int64   `json:"timestamp"`
}

// NewOrderEventPublisher creates a publisher for the given brokers and topic.
func NewOrderEventPublisher(brokers []string, topic string, logger *slog.Logger) *OrderEventPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &OrderEventPublisher{
		writer: writer,
		logger: logger.With("component", "order_event_publisher"),
	}
}

// Publish writes a single order event keyed by order id, so events for one
// order stay ordered within a partition.
func (p *OrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	msg := orderEventMessage{
		Event:          event.Event,
		OrderID:        event.OrderID.String(),
		OrderNumber:    event.OrderNumber,
		PreviousStatus: event.PreviousStatus,
		NewStatus:      event.NewStatus,
		ActorID:        event.ActorID,
		ActorRole:      event.ActorRole,
		Timestamp:      event.Timestamp,
	}
	if event.AgentID != nil {
		agentID := event.AgentID.String()
		msg.AgentID = &agentID
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: payload,
	}); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish order event",
			"event", event.Event,
			"order_id", msg.OrderID,
			"error", err)
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
