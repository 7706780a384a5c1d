package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var (
	ErrGetAllAgentsQueryIsNotConstructed = errors.New(
		"GetAllAgentsQuery must be created via NewGetAllAgentsQuery constructor",
	)
)

// GetAllAgentsQuery retrieves all delivery agents, active and inactive, for
// the operations dashboard.
type GetAllAgentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllAgentsQuery creates a query to retrieve all delivery agents.
// This is a parameterless query.
func NewGetAllAgentsQuery() GetAllAgentsQuery {
	return GetAllAgentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllAgentsQueryIsNotConstructed)
}

// GetAllAgentsQueryResponse represents one delivery agent row.
type GetAllAgentsQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Phone          string
	Active         bool
	LastAssignedAt *time.Time
}
