package order

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct fulfillment workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> out_for_delivery ──> delivered
//	   │            │             │                │
//	   └────────────┴─────────────┴────────────────┴──> cancelled
//
// delivered and cancelled are terminal; cancelled is reachable from any
// non-terminal state, delivered only from out_for_delivery.
type Status string

const (
	// StatusPending is the initial status of a freshly created order.
	StatusPending Status = "pending"

	// StatusConfirmed indicates the order has been accepted for fulfillment.
	StatusConfirmed Status = "confirmed"

	// StatusPreparing indicates the order is being picked and packed.
	// The delivery-agent vocabulary presents this state as "picked".
	StatusPreparing Status = "preparing"

	// StatusOutForDelivery indicates the order has left with a delivery agent.
	StatusOutForDelivery Status = "out_for_delivery"

	// StatusDelivered is the terminal success state.
	StatusDelivered Status = "delivered"

	// StatusCancelled is the terminal rejection state.
	StatusCancelled Status = "cancelled"
)

// statusTransitions is the single source of truth for allowed transitions.
// Terminal states map to an empty list.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusConfirmed, StatusCancelled},
		StatusConfirmed:      {StatusPreparing, StatusCancelled},
		StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
		StatusOutForDelivery: {StatusDelivered, StatusCancelled},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}
}

// ParseStatus converts a raw string into a Status.
// Returns an error for anything outside the defined status set.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the Status value is a member of the defined status set.
func (s Status) Validate() error {
	if _, ok := statusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the transition from s to target is allowed.
// Self-transitions are never allowed; transitions are single-fire.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s.
func (s Status) AllowedTransitions() []Status {
	return statusTransitions()[s]
}
