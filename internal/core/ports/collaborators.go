package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
)

// Address is a read-only snapshot of a customer delivery address owned by an
// external collaborator. The core only needs identity and the default flag
// for address resolution.
type Address struct {
	ID        kernel.UUID
	IsDefault bool
}

// AddressReader provides customer addresses from the external address book.
type AddressReader interface {
	// GetForCustomer returns all addresses registered for the customer.
	GetForCustomer(ctx context.Context, customerID kernel.UUID) ([]Address, error)
}

// CustomerSummary is the slice of customer data the core hands to the
// notification collaborator.
type CustomerSummary struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

// CustomerReader provides customer summaries from the external user store.
type CustomerReader interface {
	Get(ctx context.Context, customerID kernel.UUID) (CustomerSummary, error)
}

// AssignmentNotification is the payload pushed to a delivery agent after a
// successful assignment.
type AssignmentNotification struct {
	AgentID       kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
}

// AgentNotifier dispatches assignment notifications to delivery agents.
// Dispatch is fire-and-forget: implementations log failures, and callers
// never let a notification error fail an otherwise-committed assignment.
type AgentNotifier interface {
	NotifyAssigned(ctx context.Context, notification AssignmentNotification) error
}

// OrderEvent is the audit payload emitted after status changes and
// assignments. PreviousStatus/NewStatus are set for status changes, AgentID
// for assignments.
type OrderEvent struct {
	Event          string
	OrderID        kernel.UUID
	OrderNumber    string
	PreviousStatus string
	NewStatus      string
	AgentID        *kernel.UUID
	ActorID        string
	ActorRole      string
	Timestamp      int64
}

// Event names carried in OrderEvent.Event.
const (
	EventOrderStatusChanged = "order.status_changed"
	EventOrderAssigned      = "order.assigned"
)

// EventPublisher hands order events to the audit/webhook collaborator.
// Publishing happens after commit and never affects the operation's result.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
