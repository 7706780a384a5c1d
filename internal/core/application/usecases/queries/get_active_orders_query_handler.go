package queries

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves in-flight orders from the database.
// Filters out terminal orders to provide active fulfillment workload
// visibility.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for in-flight order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all in-flight orders.
// Returns orders outside the delivered and cancelled statuses, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			status,
			subtotal + delivery_fee,
			assigned_agent_id,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, order.StatusDelivered, order.StatusCancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id, customerID uuid.UUID
		var assignedAgentID uuid.NullUUID

		err = rows.Scan(
			&id,
			&orderResp.Number,
			&customerID,
			&orderResp.Status,
			&orderResp.Total,
			&assignedAgentID,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if orderResp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if orderResp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if assignedAgentID.Valid {
			agentID, idErr := kernel.UUIDFromBytes(assignedAgentID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			orderResp.AssignedAgentID = &agentID
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
