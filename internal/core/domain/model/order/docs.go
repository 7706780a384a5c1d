// Package order provides the Order aggregate root and its Status state
// machine for the grocery fulfillment core.
//
// The package includes:
//   - Order: the aggregate root managing identity, items, totals, agent
//     assignment, and lifecycle timestamps
//   - Item: an immutable order line carrying a unit-price snapshot
//   - Status: a state machine enforcing the fulfillment workflow
//
// Key business rules:
//   - pending -> confirmed -> preparing -> out_for_delivery -> delivered,
//     with cancelled reachable from any non-terminal state
//   - Transitions are single-fire; delivered and cancelled are terminal
//   - Subtotal always equals the sum of line subtotals; total adds the fee
//   - An agent can be assigned exactly once, and only to a pending or
//     confirmed order
package order
