package ports

import (
	"context"

	"grocery/internal/core/domain/model/agent"
	"grocery/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery agents.
type AgentRepository interface {
	// Add persists a new agent aggregate to storage.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists changes to an existing agent aggregate.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetAllActive retrieves every agent eligible for assignment.
	// The round-robin choice among them is a domain-service concern.
	GetAllActive(ctx context.Context) ([]*agent.Agent, error)
}
