// Package http is the inbound HTTP surface. Handlers are thin: they parse
// and validate transport input, call a command or query handler, and map the
// result onto JSON. All business rules live in the core.
package http

import (
	"net/http"
	"strconv"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler   commands.PlaceOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	assignAgentHandler  commands.AssignAgentCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getAllAgentsHandler    queries.GetAllAgentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignAgentHandler commands.AssignAgentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getAllAgentsHandler queries.GetAllAgentsQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:      placeOrderHandler,
		changeStatusHandler:    changeStatusHandler,
		assignAgentHandler:     assignAgentHandler,
		getOrderHandler:        getOrderHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		getAllAgentsHandler:    getAllAgentsHandler,
	}
}

// RegisterRoutes mounts the API routes on the echo instance, instrumented
// with the given metrics.
func (s *Server) RegisterRoutes(e *echo.Echo, m *metrics.ServerMetrics) {
	api := e.Group("/api/v1", instrument(m))

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderID/assign", s.AssignAgent)
	api.GET("/agents", s.GetAgents)
}

// instrument records a request counter and latency histogram per route.
func instrument(m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}
			m.Requests.WithLabelValues(c.Path(), strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(c.Path()).
				Observe(float64(time.Since(start).Milliseconds()))

			return err
		}
	}
}

type placeOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	CustomerID    string                  `json:"customer_id"`
	Items         []placeOrderItemRequest `json:"items"`
	AddressID     *string                 `json:"address_id"`
	PaymentMethod string                  `json:"payment_method"`
}

// PlaceOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	items := make([]commands.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		productID, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid product id: "+parseErr.Error())
		}
		items = append(items, commands.ItemRequest{ProductID: productID, Quantity: item.Quantity})
	}

	var addressID *kernel.UUID
	if req.AddressID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.AddressID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid address id: "+parseErr.Error())
		}
		addressID = &parsed
	}

	cmd, err := commands.NewPlaceOrderCommand(customerID, items, addressID, req.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		status, body := errorBody(err)
		return ctx.JSON(status, body)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(created, ""))
}

type changeStatusRequest struct {
	Status    string `json:"status"`
	ActorID   string `json:"actor_id"`
	ActorRole string `json:"actor_role"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderID/status - moves an
// order through its lifecycle. Delivery agents may use "picked" for the
// preparing state.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req changeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(statusFromView(req.ActorRole, req.Status))
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, req.ActorID, req.ActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	updated, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		status, body := errorBody(err)
		return ctx.JSON(status, body)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated, req.ActorRole))
}

type assignAgentRequest struct {
	AgentID   *string `json:"agent_id"`
	ActorID   string  `json:"actor_id"`
	ActorRole string  `json:"actor_role"`
}

type assignAgentResponse struct {
	Order OrderResponse `json:"order"`
	Agent AgentResponse `json:"agent"`
}

// AssignAgent handles POST /api/v1/orders/:orderID/assign - assigns a
// delivery agent. Omitting agent_id selects one automatically.
func (s *Server) AssignAgent(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req assignAgentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var agentID *kernel.UUID
	if req.AgentID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.AgentID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid agent id: "+parseErr.Error())
		}
		agentID = &parsed
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, agentID, req.ActorID, req.ActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	updated, selected, err := s.assignAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		status, body := errorBody(err)
		return ctx.JSON(status, body)
	}

	return ctx.JSON(http.StatusOK, assignAgentResponse{
		Order: orderFromDomain(updated, req.ActorRole),
		Agent: AgentResponse{
			ID:             selected.ID().String(),
			Name:           selected.Name(),
			Phone:          selected.Phone(),
			Active:         selected.IsActive(),
			LastAssignedAt: selected.LastAssignedAt(),
		},
	})
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves one order with items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		status, body := errorBody(err)
		return ctx.JSON(status, body)
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(resp))
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves in-flight orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		status, body := errorBody(err)
		return ctx.JSON(status, body)
	}

	response := make([]OrderSummaryResponse, 0, len(orders))
	for _, row := range orders {
		summary := OrderSummaryResponse{
			ID:         row.ID.String(),
			Number:     row.Number,
			CustomerID: row.CustomerID.String(),
			Status:     row.Status,
			Total:      row.Total,
			CreatedAt:  row.CreatedAt,
		}
		if row.AssignedAgentID != nil {
			id := row.AssignedAgentID.String()
			summary.AssignedAgentID = &id
		}
		response = append(response, summary)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAgents handles GET /api/v1/agents - retrieves all delivery agents.
func (s *Server) GetAgents(ctx echo.Context) error {
	agents, err := s.getAllAgentsHandler.Handle(ctx.Request().Context(), queries.NewGetAllAgentsQuery())
	if err != nil {
		status, body := errorBody(err)
		return ctx.JSON(status, body)
	}

	response := make([]AgentResponse, 0, len(agents))
	for _, row := range agents {
		response = append(response, AgentResponse{
			ID:             row.ID.String(),
			Name:           row.Name,
			Phone:          row.Phone,
			Active:         row.Active,
			LastAssignedAt: row.LastAssignedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
