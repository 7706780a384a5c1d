package commands

import (
	"context"
	"errors"
	"time"

	"grocery/internal/pkg/errs"
)

// Transaction deadlines per operation. Exceeding a deadline aborts the
// transaction; the caller sees errs.ErrTimeout and may retry.
const (
	placeOrderTimeout = 30 * time.Second
	transitionTimeout = 10 * time.Second
	assignmentTimeout = 10 * time.Second
)

// wrapTimeout converts a context deadline hit into the core's timeout error,
// leaving every other error untouched.
func wrapTimeout(err error, operation string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewTimeoutError(operation, err)
	}
	return err
}
