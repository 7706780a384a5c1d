// Package agent provides the delivery Agent aggregate. The fulfillment core
// uses it for two things: the active flag gates assignment eligibility, and
// lastAssignedAt orders agents for the round-robin selection policy.
package agent
