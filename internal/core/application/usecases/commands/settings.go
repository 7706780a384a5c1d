package commands

import "grocery/internal/core/domain/model/kernel"

// Settings is the fulfillment configuration snapshot handed to command
// handlers at construction time. Passing it explicitly, rather than reading
// ambient global state, keeps the handlers testable with fixed fixtures.
type Settings struct {
	// DeliveryFee is added on top of the order subtotal.
	DeliveryFee kernel.Money

	// MinimumOrder is the smallest accepted subtotal, checked before the
	// delivery fee is added.
	MinimumOrder kernel.Money

	// AutoAdvanceOnAssign advances an order to out_for_delivery as part of
	// a successful agent assignment.
	AutoAdvanceOnAssign bool
}
