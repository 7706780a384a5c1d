package http

import (
	"errors"
	"net/http"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/agent"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/product"
	"grocery/internal/core/domain/services"
	"grocery/internal/pkg/errs"
)

// roleAgent is the delivery-agent actor role. Delivery agents use "picked"
// for the preparing state; the mapping lives here, not in the state machine.
const roleAgent = "agent"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Details []StockIssueResponse `json:"details,omitempty"`
}

// StockIssueResponse reports one offending order line of a rejected placement.
type StockIssueResponse struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// OrderResponse is the order detail body returned by commands and the
// detail query. Money fields are in paise.
type OrderResponse struct {
	ID               string              `json:"id"`
	Number           string              `json:"number"`
	CustomerID       string              `json:"customer_id"`
	AddressID        string              `json:"address_id"`
	Items            []OrderItemResponse `json:"items,omitempty"`
	Subtotal         int64               `json:"subtotal"`
	DeliveryFee      int64               `json:"delivery_fee"`
	Total            int64               `json:"total"`
	PaymentMethod    string              `json:"payment_method"`
	Status           string              `json:"status"`
	AssignedAgentID  *string             `json:"assigned_agent_id,omitempty"`
	ConfirmedAt      *time.Time          `json:"confirmed_at,omitempty"`
	PickedAt         *time.Time          `json:"picked_at,omitempty"`
	OutForDeliveryAt *time.Time          `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt        *time.Time          `json:"created_at,omitempty"`
}

// OrderItemResponse is one order line with its price snapshots.
type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
}

// OrderSummaryResponse is one row of the active orders listing.
type OrderSummaryResponse struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	CustomerID      string    `json:"customer_id"`
	Status          string    `json:"status"`
	Total           int64     `json:"total"`
	AssignedAgentID *string   `json:"assigned_agent_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AgentResponse is one row of the agents listing.
type AgentResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Active         bool       `json:"active"`
	LastAssignedAt *time.Time `json:"last_assigned_at,omitempty"`
}

// statusFromView translates a role-specific status name into the canonical
// vocabulary before parsing.
func statusFromView(role, raw string) string {
	if role == roleAgent && raw == "picked" {
		return order.StatusPreparing.String()
	}
	return raw
}

// statusToView translates a canonical status into the actor's vocabulary.
func statusToView(role string, status order.Status) string {
	if role == roleAgent && status == order.StatusPreparing {
		return "picked"
	}
	return status.String()
}

func orderFromDomain(o *order.Order, role string) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Paise(),
			Subtotal:    item.Subtotal().Paise(),
		})
	}

	resp := OrderResponse{
		ID:               o.ID().String(),
		Number:           o.Number(),
		CustomerID:       o.CustomerID().String(),
		AddressID:        o.AddressID().String(),
		Items:            items,
		Subtotal:         o.Subtotal().Paise(),
		DeliveryFee:      o.DeliveryFee().Paise(),
		Total:            o.Total().Paise(),
		PaymentMethod:    o.PaymentMethod(),
		Status:           statusToView(role, o.Status()),
		ConfirmedAt:      o.ConfirmedAt(),
		PickedAt:         o.PickedAt(),
		OutForDeliveryAt: o.OutForDeliveryAt(),
		DeliveredAt:      o.DeliveredAt(),
	}
	if assigned := o.AssignedAgent(); assigned != nil {
		id := assigned.String()
		resp.AssignedAgentID = &id
	}
	return resp
}

func orderFromQuery(q queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	createdAt := q.CreatedAt
	resp := OrderResponse{
		ID:               q.ID.String(),
		Number:           q.Number,
		CustomerID:       q.CustomerID.String(),
		AddressID:        q.AddressID.String(),
		Items:            items,
		Subtotal:         q.Subtotal,
		DeliveryFee:      q.DeliveryFee,
		Total:            q.Total,
		PaymentMethod:    q.PaymentMethod,
		Status:           q.Status,
		ConfirmedAt:      q.ConfirmedAt,
		PickedAt:         q.PickedAt,
		OutForDeliveryAt: q.OutForDeliveryAt,
		DeliveredAt:      q.DeliveredAt,
		CreatedAt:        &createdAt,
	}
	if q.AssignedAgentID != nil {
		id := q.AssignedAgentID.String()
		resp.AssignedAgentID = &id
	}
	return resp
}

// errorBody maps an application error onto an HTTP status and response body.
func errorBody(err error) (int, ErrorResponse) {
	var stockErr *commands.StockValidationError
	if errors.As(err, &stockErr) {
		details := make([]StockIssueResponse, 0, len(stockErr.Issues))
		for _, issue := range stockErr.Issues {
			details = append(details, StockIssueResponse{
				ProductID: issue.ProductID.String(),
				Requested: issue.Requested,
				Available: issue.Available,
			})
		}
		return http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Insufficient stock for requested items",
			Details: details,
		}
	}

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrDuplicateItems):
		return http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		}
	case errors.Is(err, commands.ErrNoAddress),
		errors.Is(err, commands.ErrBelowMinimumOrder),
		errors.Is(err, product.ErrProductInactive),
		errors.Is(err, agent.ErrAgentInactive):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		}
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrNotAssignable),
		errors.Is(err, services.ErrNoActiveAgents):
		return http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		}
	case errors.Is(err, errs.ErrTimeout):
		return http.StatusGatewayTimeout, ErrorResponse{
			Code:    http.StatusGatewayTimeout,
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		}
	}
}
