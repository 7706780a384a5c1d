// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Orders span two tables: the order row carries lifecycle
// state and totals, order_items carries the immutable lines with their price
// snapshots.
package orderrepo

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed for the hot paths: lookup by number, per-customer
// listings, and the assignment trigger's scan for unassigned work.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           string     `gorm:"uniqueIndex;not null"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	AddressID        uuid.UUID  `gorm:"type:uuid;not null"`
	Subtotal         int64      `gorm:"not null"`
	DeliveryFee      int64      `gorm:"not null"`
	PaymentMethod    string     `gorm:"not null"`
	Status           string     `gorm:"index;not null"`
	AssignedAgentID  *uuid.UUID `gorm:"type:uuid;index"`
	ConfirmedAt      *time.Time
	PickedAt         *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// lifecycleColumns are the OrderDTO columns Update rewrites. Every other
// column on the order row is immutable after creation. Keep this list in
// step with the lifecycle fields above.
var lifecycleColumns = []string{
	"status",
	"assigned_agent_id",
	"confirmed_at",
	"picked_at",
	"out_for_delivery_at",
	"delivered_at",
}

// OrderItemDTO represents one persisted order line. Lines are written once
// at order creation and never updated.
type OrderItemDTO struct {
	ID          uint      `gorm:"primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
	Subtotal    int64     `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation, items included.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.AssignedAgent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     aggregate.ID().Bytes(),
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Paise(),
			Subtotal:    item.Subtotal().Paise(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		AddressID:        aggregate.AddressID().Bytes(),
		Subtotal:         aggregate.Subtotal().Paise(),
		DeliveryFee:      aggregate.DeliveryFee().Paise(),
		PaymentMethod:    aggregate.PaymentMethod(),
		Status:           string(aggregate.Status()),
		AssignedAgentID:  agentID,
		ConfirmedAt:      aggregate.ConfirmedAt(),
		PickedAt:         aggregate.PickedAt(),
		OutForDeliveryAt: aggregate.OutForDeliveryAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		Items:            items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle timestamps using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AssignedAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AssignedAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		addressID,
		items,
		subtotal,
		deliveryFee,
		dto.PaymentMethod,
		order.Status(dto.Status),
		agentID,
		dto.ConfirmedAt,
		dto.PickedAt,
		dto.OutForDeliveryAt,
		dto.DeliveredAt,
	)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.ProductName, dto.Quantity, unitPrice, subtotal)
}
