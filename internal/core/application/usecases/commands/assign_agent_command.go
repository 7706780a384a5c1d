package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand represents a validated request to bind a delivery agent
// to an order. A nil agent id requests automatic selection via the
// round-robin dispatcher; a concrete id pins the assignment to that agent.
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	agentID   *kernel.UUID
	actorID   string
	actorRole string

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a command to assign an agent to an order.
func NewAssignAgentCommand(
	orderID kernel.UUID,
	agentID *kernel.UUID,
	actorID, actorRole string,
) (AssignAgentCommand, error) {
	cmd := AssignAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return AssignAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the requested agent, or nil for automatic selection.
func (c AssignAgentCommand) AgentID() *kernel.UUID {
	return c.agentID
}

// ActorID returns the identifier of whoever requested the assignment.
func (c AssignAgentCommand) ActorID() string {
	return c.actorID
}

// ActorRole returns the requesting actor's role tag.
func (c AssignAgentCommand) ActorRole() string {
	return c.actorRole
}

func (c *AssignAgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignAgentCommand) setAgentID(agentID *kernel.UUID) error {
	if agentID == nil {
		return nil
	}
	if err := agentID.Validate(); err != nil {
		return err
	}
	c.agentID = agentID
	return nil
}

func (c *AssignAgentCommand) setActor(actorID, actorRole string) error {
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
