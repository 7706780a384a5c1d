package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with its items from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order detail read model.
// Returns errs.ErrObjectNotFound when no order has the requested id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id, customerID, addressID uuid.UUID
	var assignedAgentID uuid.NullUUID
	var confirmedAt, pickedAt, outForDeliveryAt, deliveredAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			address_id,
			subtotal,
			delivery_fee,
			payment_method,
			status,
			assigned_agent_id,
			confirmed_at,
			picked_at,
			out_for_delivery_at,
			delivered_at,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id,
		&resp.Number,
		&customerID,
		&addressID,
		&resp.Subtotal,
		&resp.DeliveryFee,
		&resp.PaymentMethod,
		&resp.Status,
		&assignedAgentID,
		&confirmedAt,
		&pickedAt,
		&outForDeliveryAt,
		&deliveredAt,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.AddressID, err = kernel.UUIDFromBytes(addressID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if assignedAgentID.Valid {
		agentID, idErr := kernel.UUIDFromBytes(assignedAgentID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.AssignedAgentID = &agentID
	}

	resp.ConfirmedAt = nullableTime(confirmedAt)
	resp.PickedAt = nullableTime(pickedAt)
	resp.OutForDeliveryAt = nullableTime(outForDeliveryAt)
	resp.DeliveredAt = nullableTime(deliveredAt)
	resp.Total = resp.Subtotal + resp.DeliveryFee

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			product_name,
			quantity,
			unit_price,
			subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_name
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID

		err = rows.Scan(
			&productID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
