// Package queries contains read-only operations against the database.
// Implements the Query pattern for read operations in the CQRS architecture:
// handlers bypass the aggregates and read projections straight from SQL,
// returning flat response models shaped for the transport layer.
package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its items.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the order detail read model. Money fields are in
// paise; Status carries the canonical lowercase status name.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	Number           string
	CustomerID       kernel.UUID
	AddressID        kernel.UUID
	Items            []OrderItemResponse
	Subtotal         int64
	DeliveryFee      int64
	Total            int64
	PaymentMethod    string
	Status           string
	AssignedAgentID  *kernel.UUID
	ConfirmedAt      *time.Time
	PickedAt         *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CreatedAt        time.Time
}

// OrderItemResponse is one order line of the detail view, carrying the
// product name and unit price snapshots taken at order time.
type OrderItemResponse struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   int64
	Subtotal    int64
}
