package queries

import (
	"context"
	"database/sql"

	"grocery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllAgentsQueryHandler retrieves all delivery agent information from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetAllAgentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllAgentsQueryHandler creates a handler for agent retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetAllAgentsQueryHandler(db *gorm.DB) GetAllAgentsQueryHandler {
	return GetAllAgentsQueryHandler{db: db}
}

// Handle executes the query to retrieve all agents.
// Returns a slice of agent read models sorted by name.
func (h GetAllAgentsQueryHandler) Handle(
	ctx context.Context,
	query GetAllAgentsQuery,
) ([]GetAllAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents := make([]GetAllAgentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			active,
			last_assigned_at
		FROM agents
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var agentResp GetAllAgentsQueryResponse
		var id uuid.UUID
		var lastAssignedAt sql.NullTime

		err = rows.Scan(
			&id,
			&agentResp.Name,
			&agentResp.Phone,
			&agentResp.Active,
			&lastAssignedAt,
		)
		if err != nil {
			return nil, err
		}

		if agentResp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if lastAssignedAt.Valid {
			at := lastAssignedAt.Time
			agentResp.LastAssignedAt = &at
		}

		agents = append(agents, agentResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
