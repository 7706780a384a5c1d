package services

import (
	"errors"

	"grocery/internal/core/domain/model/agent"
	"grocery/internal/core/domain/model/order"
)

// ErrNoActiveAgents is returned when automatic assignment finds no active
// agent to dispatch the order to.
var ErrNoActiveAgents = errors.New("no active agents available")

// AgentDispatcher is a domain service that selects the delivery agent for an
// order using a round-robin policy: among active agents, pick the one with
// the oldest lastAssignedAt, treating never-assigned agents as oldest of all.
// Ties are broken by the earliest agent-creation time.
//
// The dispatcher validates the order is assignable but performs no
// persistence; callers run it inside the same transaction that claims the
// assignment so the precondition re-check and the write stay atomic.
type AgentDispatcher struct{}

// NewAgentDispatcher creates a new AgentDispatcher instance.
func NewAgentDispatcher() AgentDispatcher {
	return AgentDispatcher{}
}

// Dispatch selects an agent for the order and executes the assignment:
// the order gets the agent bound, the agent's round-robin position is left
// for the caller to stamp after the surrounding transaction decides the
// assignment time.
//
// Returns ErrNoActiveAgents when no provided agent is active, or the
// order's own assignment errors when it is not assignable.
func (d AgentDispatcher) Dispatch(o *order.Order, agents []*agent.Agent) (*agent.Agent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	selected, err := d.selectAgent(agents)
	if err != nil {
		return nil, err
	}

	if err = o.AssignAgent(selected.ID()); err != nil {
		return nil, err
	}

	return selected, nil
}

// selectAgent applies the round-robin policy over the candidate agents.
func (d AgentDispatcher) selectAgent(agents []*agent.Agent) (*agent.Agent, error) {
	var best *agent.Agent

	for _, candidate := range agents {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if !candidate.IsActive() {
			continue
		}

		if best == nil || lessRecentlyAssigned(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return nil, ErrNoActiveAgents
	}

	return best, nil
}

// lessRecentlyAssigned reports whether a should be preferred over b:
// nil lastAssignedAt sorts before any timestamp, older timestamps before
// newer ones, and creation time breaks ties.
func lessRecentlyAssigned(a, b *agent.Agent) bool {
	aLast, bLast := a.LastAssignedAt(), b.LastAssignedAt()

	switch {
	case aLast == nil && bLast != nil:
		return true
	case aLast != nil && bLast == nil:
		return false
	case aLast != nil && bLast != nil && !aLast.Equal(*bLast):
		return aLast.Before(*bLast)
	default:
		return a.CreatedAt().Before(b.CreatedAt())
	}
}
