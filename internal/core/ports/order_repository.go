package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate and its items to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Items are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order while locking its row for the
	// remainder of the current transaction. Status transitions and agent
	// assignment read through this method so the precondition check and the
	// subsequent write observe the same persisted state.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ExistsWithNumber reports whether an order with the given order number
	// is already persisted. Used by the order number generator.
	ExistsWithNumber(ctx context.Context, number string) (bool, error)

	// GetFirstAssignable retrieves the oldest order that is unassigned and
	// in an assignable status. Used by the automatic assignment trigger.
	GetFirstAssignable(ctx context.Context) (*order.Order, error)
}
