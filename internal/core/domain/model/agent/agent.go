package agent

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

var (
	// ErrAgentIsNotConstructed is returned when an Agent instance was not
	// created through NewAgent or RestoreAgent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")

	// ErrAgentInactive is returned when a deactivated agent is selected for
	// an assignment.
	ErrAgentInactive = errors.New("agent is not active")
)

// Agent represents a delivery agent who can be bound to orders.
//
// The fulfillment core touches two fields: the active flag gates selection,
// and lastAssignedAt drives the round-robin policy (the agent least recently
// assigned goes next; an agent never assigned goes first). Activation and
// contact details are maintained by an admin collaborator outside this core.
type Agent struct {
	// id is the unique identifier for the agent
	id kernel.UUID

	// name is the agent's display name
	name string

	// phone is the contact number used for push notifications
	phone string

	// active marks whether the agent can receive assignments
	active bool

	// lastAssignedAt is when the agent last received an order (nil if never)
	lastAssignedAt *time.Time

	// createdAt breaks round-robin ties in favor of the earliest agent
	createdAt time.Time

	// isConstructed ensures the agent was created via a constructor
	isConstructed bool
}

// NewAgent creates a new active Agent with validation.
func NewAgent(id kernel.UUID, name, phone string, createdAt time.Time) (*Agent, error) {
	a := &Agent{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
	); err != nil {
		return nil, err
	}

	a.createdAt = createdAt
	return a, nil
}

// RestoreAgent reconstructs an Agent from persistence, including its
// activation state and assignment history.
func RestoreAgent(
	id kernel.UUID,
	name, phone string,
	active bool,
	lastAssignedAt *time.Time,
	createdAt time.Time,
) (*Agent, error) {
	a, err := NewAgent(id, name, phone, createdAt)
	if err != nil {
		return nil, err
	}

	a.active = active
	a.lastAssignedAt = lastAssignedAt
	return a, nil
}

// Validate ensures the Agent instance was properly constructed.
func (a *Agent) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAgentIsNotConstructed
	}
	return nil
}

// IsEqual compares two agents by their unique identifiers.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Phone returns the agent's contact number.
func (a *Agent) Phone() string {
	return a.phone
}

// IsActive reports whether the agent can receive assignments.
func (a *Agent) IsActive() bool {
	return a.active
}

// LastAssignedAt returns when the agent last received an order, or nil.
func (a *Agent) LastAssignedAt() *time.Time {
	return a.lastAssignedAt
}

// CreatedAt returns when the agent was registered.
func (a *Agent) CreatedAt() time.Time {
	return a.createdAt
}

// MarkAssigned records a successful assignment, updating the round-robin
// position. Returns ErrAgentInactive for deactivated agents.
func (a *Agent) MarkAssigned(now time.Time) error {
	if !a.active {
		return ErrAgentInactive
	}
	a.lastAssignedAt = &now
	return nil
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Agent) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}
