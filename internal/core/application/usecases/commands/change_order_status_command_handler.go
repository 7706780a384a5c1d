package commands

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"
)

// ChangeOrderStatusCommandHandler moves an order along its lifecycle inside
// a single transaction. The order row is locked for the duration, so the
// transition check and the write observe the same persisted status even under
// concurrent requests for the same order.
//
// After a successful commit the handler emits an audit event. Event delivery
// is best effort: the publisher logs failures and the committed transition is
// never rolled back because of them.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command and returns the updated order.
// Disallowed transitions come back as order.InvalidTransitionError with the
// transaction rolled back.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, transitionTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, wrapTimeout(err, "change order status")
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, wrapTimeout(err, "change order status")
	}

	previous := aggregate.Status()

	if err = aggregate.TransitionTo(cmd.Target(), time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, wrapTimeout(err, "change order status")
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, wrapTimeout(err, "change order status")
	}

	h.publishStatusChanged(ctx, aggregate, previous, cmd)

	return aggregate, nil
}

// publishStatusChanged emits the audit event for a committed transition.
// Uses a non-cancellable context so a request deadline hit right after commit
// does not suppress the event.
func (h ChangeOrderStatusCommandHandler) publishStatusChanged(
	ctx context.Context,
	aggregate *order.Order,
	previous order.Status,
	cmd ChangeOrderStatusCommand,
) {
	_ = h.publisher.Publish(context.WithoutCancel(ctx), ports.OrderEvent{
		Event:          ports.EventOrderStatusChanged,
		OrderID:        aggregate.ID(),
		OrderNumber:    aggregate.Number(),
		PreviousStatus: string(previous),
		NewStatus:      string(aggregate.Status()),
		ActorID:        cmd.ActorID(),
		ActorRole:      cmd.ActorRole(),
		Timestamp:      time.Now().Unix(),
	})
}
