package jobs

import (
	"context"
	"errors"
	"log/slog"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/services"
	"grocery/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// systemActor identifies the scheduler in status-change and assignment audit
// events triggered by automatic dispatch.
const (
	systemActorID   = "system"
	systemActorRole = "system"
)

// assignableOrderSource locates the next order waiting for a delivery agent.
type assignableOrderSource interface {
	GetFirstAssignable(ctx context.Context) (*order.Order, error)
}

// AgentAssignmentJob periodically dispatches the oldest unassigned
// assignable order to a delivery agent via automatic selection.
type AgentAssignmentJob struct {
	handler commands.AssignAgentCommandHandler
	orders  assignableOrderSource
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAgentAssignmentJob creates a job that runs automatic assignment every
// 15 seconds.
func NewAgentAssignmentJob(
	handler commands.AssignAgentCommandHandler,
	orders assignableOrderSource,
	logger *slog.Logger,
) *AgentAssignmentJob {
	return &AgentAssignmentJob{
		handler: handler,
		orders:  orders,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "agent_assignment_job"),
	}
}

// Start begins the assignment job.
func (j *AgentAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Agent assignment job started (running every 15 seconds)")
	return nil
}

// Stop stops the assignment job.
func (j *AgentAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Agent assignment job stopped")
}

func (j *AgentAssignmentJob) run() {
	ctx := context.Background()

	next, err := j.orders.GetFirstAssignable(ctx)
	if err != nil {
		// No assignable work is the common case.
		if !errors.Is(err, errs.ErrObjectNotFound) {
			j.logger.ErrorContext(ctx, "Failed to look up assignable orders", "error", err)
		}
		return
	}

	cmd, err := commands.NewAssignAgentCommand(next.ID(), nil, systemActorID, systemActorRole)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build assignment command", "error", err)
		return
	}

	_, selected, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		// Expected business outcomes: every agent is inactive, or another
		// actor assigned the order between lookup and lock.
		if !errors.Is(err, services.ErrNoActiveAgents) && !errors.Is(err, order.ErrAlreadyAssigned) {
			j.logger.ErrorContext(ctx, "Automatic assignment failed",
				"order_number", next.Number(),
				"error", err)
		}
		return
	}

	j.logger.InfoContext(ctx, "Order dispatched automatically",
		"order_number", next.Number(),
		"agent", selected.Name())
}
