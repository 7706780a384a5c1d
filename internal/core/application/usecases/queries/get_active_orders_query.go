package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves all orders still in flight: everything not
// yet delivered or cancelled. Used by the operations dashboard and the
// automatic assignment trigger's visibility view.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve in-flight orders.
// This is a parameterless query.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is the in-flight order list read model.
// A summary row only; item detail comes from GetOrderQuery.
type GetActiveOrdersQueryResponse struct {
	ID              kernel.UUID
	Number          string
	CustomerID      kernel.UUID
	Status          string
	Total           int64
	AssignedAgentID *kernel.UUID
	CreatedAt       time.Time
}
