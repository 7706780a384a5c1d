// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the core itself does not own.
//
// # Available Jobs
//
// 1. AgentAssignmentJob - Runs every 15 seconds to dispatch the oldest
// unassigned assignable order to a delivery agent.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignAgentHandler, orderRepository, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The assignment job ignores expected business outcomes (no assignable
// orders, no active agents, an order assigned concurrently) and logs
// everything else.
package jobs
