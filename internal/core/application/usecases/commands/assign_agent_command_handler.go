package commands

import (
	"context"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/agent"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
)

// AssignAgentCommandHandler binds a delivery agent to an order, either the
// agent named in the command or one selected by the round-robin dispatcher.
//
// The order row is locked for the duration of the transaction, so two
// concurrent assignment attempts for the same order serialize: the second
// re-reads the already-assigned order and fails its precondition check. The
// assignment, the order's optional advance to out_for_delivery, and the
// agent's round-robin stamp commit together.
//
// Post-commit side effects — the agent push notification and the audit
// event — are best effort and never fail a committed assignment.
type AssignAgentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher services.AgentDispatcher
	customers  ports.CustomerReader
	notifier   ports.AgentNotifier
	publisher  ports.EventPublisher
	settings   Settings
}

// NewAssignAgentCommandHandler creates a handler for agent assignment.
func NewAssignAgentCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher services.AgentDispatcher,
	customers ports.CustomerReader,
	notifier ports.AgentNotifier,
	publisher ports.EventPublisher,
	settings Settings,
) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		customers:  customers,
		notifier:   notifier,
		publisher:  publisher,
		settings:   settings,
	}
}

// Handle processes the assignment command and returns the updated order and
// the assigned agent. Orders that are already assigned or past the
// assignable statuses come back as order.ErrAlreadyAssigned or
// order.ErrNotAssignable with the transaction rolled back.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (*order.Order, *agent.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, assignmentTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, wrapTimeout(err, "assign agent")
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, wrapTimeout(err, "assign agent")
	}

	selected, err := h.selectAndAssign(ctx, agentRepo, aggregate, cmd.AgentID())
	if err != nil {
		return nil, nil, wrapTimeout(err, "assign agent")
	}

	now := time.Now()

	if h.settings.AutoAdvanceOnAssign {
		if err = advanceToOutForDelivery(aggregate, now); err != nil {
			return nil, nil, err
		}
	}

	if err = selected.MarkAssigned(now); err != nil {
		return nil, nil, err
	}

	if err = agentRepo.Update(ctx, selected); err != nil {
		return nil, nil, wrapTimeout(err, "assign agent")
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, nil, wrapTimeout(err, "assign agent")
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, wrapTimeout(err, "assign agent")
	}

	h.notifyAssigned(ctx, aggregate, selected, cmd)

	return aggregate, selected, nil
}

// selectAndAssign binds the requested agent, or dispatches one by the
// round-robin policy when no agent was named. A named agent must exist and
// be active.
func (h AssignAgentCommandHandler) selectAndAssign(
	ctx context.Context,
	agentRepo ports.AgentRepository,
	aggregate *order.Order,
	requested *kernel.UUID,
) (*agent.Agent, error) {
	if requested != nil {
		candidate, err := agentRepo.Get(ctx, *requested)
		if err != nil {
			return nil, err
		}
		if !candidate.IsActive() {
			return nil, fmt.Errorf("agent %s: %w", candidate.ID(), agent.ErrAgentInactive)
		}
		if err = aggregate.AssignAgent(candidate.ID()); err != nil {
			return nil, err
		}
		return candidate, nil
	}

	candidates, err := agentRepo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	return h.dispatcher.Dispatch(aggregate, candidates)
}

// advanceToOutForDelivery walks the order through the intermediate statuses
// to out_for_delivery, stamping each stage's timestamp on the way. Orders
// reaching this point are pending or confirmed, so the walk always
// terminates.
func advanceToOutForDelivery(aggregate *order.Order, now time.Time) error {
	next := map[order.Status]order.Status{
		order.StatusPending:   order.StatusConfirmed,
		order.StatusConfirmed: order.StatusPreparing,
		order.StatusPreparing: order.StatusOutForDelivery,
	}

	for aggregate.Status() != order.StatusOutForDelivery {
		target, ok := next[aggregate.Status()]
		if !ok {
			return &order.InvalidTransitionError{From: aggregate.Status(), To: order.StatusOutForDelivery}
		}
		if err := aggregate.TransitionTo(target, now); err != nil {
			return err
		}
	}

	return nil
}

// notifyAssigned pushes the assignment to the agent and emits the audit
// event. Both are best effort; a customer lookup failure only suppresses the
// push, never the event.
func (h AssignAgentCommandHandler) notifyAssigned(
	ctx context.Context,
	aggregate *order.Order,
	selected *agent.Agent,
	cmd AssignAgentCommand,
) {
	ctx = context.WithoutCancel(ctx)

	if customer, err := h.customers.Get(ctx, aggregate.CustomerID()); err == nil {
		_ = h.notifier.NotifyAssigned(ctx, ports.AssignmentNotification{
			AgentID:       selected.ID(),
			OrderID:       aggregate.ID(),
			OrderNumber:   aggregate.Number(),
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
		})
	}

	agentID := selected.ID()
	_ = h.publisher.Publish(ctx, ports.OrderEvent{
		Event:       ports.EventOrderAssigned,
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.Number(),
		NewStatus:   string(aggregate.Status()),
		AgentID:     &agentID,
		ActorID:     cmd.ActorID(),
		ActorRole:   cmd.ActorRole(),
		Timestamp:   time.Now().Unix(),
	})
}
