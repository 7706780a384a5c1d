// Package agentrepo provides data transfer objects and mapping functions for
// delivery agent persistence.
package agentrepo

import (
	"time"

	"grocery/internal/core/domain/model/agent"
	"grocery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting delivery agents.
// last_assigned_at drives the round-robin selection and is the only column
// the fulfillment core writes after registration.
type AgentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"not null"`
	Phone          string    `gorm:"not null"`
	Active         bool      `gorm:"not null;default:true;index"`
	LastAssignedAt *time.Time
	CreatedAt      time.Time
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// fromDomain converts an agent domain aggregate to its database
// representation.
func fromDomain(a *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:             a.ID().Bytes(),
		Name:           a.Name(),
		Phone:          a.Phone(),
		Active:         a.IsActive(),
		LastAssignedAt: a.LastAssignedAt(),
		CreatedAt:      a.CreatedAt(),
	}
}

// toDomain converts a database DTO to an agent domain aggregate.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return agent.RestoreAgent(id, dto.Name, dto.Phone, dto.Active, dto.LastAssignedAt, dto.CreatedAt)
}
