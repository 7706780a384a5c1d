// Package services contains stateless domain services for the fulfillment
// core: the round-robin AgentDispatcher and the collision-checked
// OrderNumberGenerator. Both are pure coordination logic over aggregates and
// run inside transactions owned by their callers.
package services
