package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a validated request to move an order
// along its lifecycle. The actor fields identify who requested the change and
// flow into the audit event; they do not affect the transition itself.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	actorID   string
	actorRole string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status.
// The target must be a recognized status name; whether the transition is
// allowed from the order's current status is decided inside the transaction.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actorID, actorRole string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// ActorID returns the identifier of whoever requested the change.
func (c ChangeOrderStatusCommand) ActorID() string {
	return c.actorID
}

// ActorRole returns the requesting actor's role tag.
func (c ChangeOrderStatusCommand) ActorRole() string {
	return c.actorRole
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actorID, actorRole string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actor id")
	}
	if actorRole == "" {
		return errs.NewValueIsRequiredError("actor role")
	}
	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
