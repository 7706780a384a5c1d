// Package redis pushes assignment notifications to delivery agents over
// per-agent pub/sub channels.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"grocery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// AgentNotifier publishes assignment notifications on the agent's channel.
// The agent's mobile client subscribes to `agent:<id>:notifications`.
// Delivery is best-effort: a failed publish is logged and never fails the
// committed assignment.
type AgentNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// assignmentMessage is the wire shape of an assignment push.
type assignmentMessage struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// NewAgentNotifier creates a notifier backed by the given Redis client.
func NewAgentNotifier(client *redis.Client, logger *slog.Logger) *AgentNotifier {
	return &AgentNotifier{
		client: client,
		logger: logger.With("component", "agent_notifier"),
	}
}

// NotifyAssigned publishes the assignment payload on the agent's channel.
func (n *AgentNotifier) NotifyAssigned(ctx context.Context, notification ports.AssignmentNotification) error {
	payload, err := json.Marshal(assignmentMessage{
		OrderID:       notification.OrderID.String(),
		OrderNumber:   notification.OrderNumber,
		CustomerName:  notification.CustomerName,
		CustomerPhone: notification.CustomerPhone,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal assignment notification: %w", err)
	}

	channel := fmt.Sprintf("agent:%s:notifications", notification.AgentID.String())
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		n.logger.ErrorContext(ctx, "Failed to push assignment notification",
			"agent_id", notification.AgentID.String(),
			"order_number", notification.OrderNumber,
			"error", err)
		return fmt.Errorf("failed to push assignment notification: %w", err)
	}

	return nil
}
