package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// maxNumberAttempts bounds the retry-until-unique loop. The 4-digit suffix
// space is small enough to collide on busy days, but never deep enough to
// justify unbounded retries.
const maxNumberAttempts = 10

// ErrNumberGenerationFailed is returned when no unique order number could be
// produced within the attempt bound. The order is not created; callers may
// retry the whole operation.
var ErrNumberGenerationFailed = errors.New("order number generation failed")

// OrderNumberIndex answers whether an order number is already taken.
// The order repository implements it against persisted orders.
type OrderNumberIndex interface {
	ExistsWithNumber(ctx context.Context, number string) (bool, error)
}

// OrderNumberGenerator produces human-readable, collision-checked order
// numbers in the format ORD-YYYYMMDD-NNNN, where NNNN is a random 4-digit
// suffix. Uniqueness against persisted orders is the only contract;
// generation is not deterministic.
type OrderNumberGenerator struct {
	now func() time.Time
}

// NewOrderNumberGenerator creates a generator using the wall clock.
func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{now: time.Now}
}

// NewOrderNumberGeneratorWithClock creates a generator with an injected
// clock for tests.
func NewOrderNumberGeneratorWithClock(now func() time.Time) OrderNumberGenerator {
	return OrderNumberGenerator{now: now}
}

// Generate returns an order number not present in the index, retrying with a
// fresh suffix on collision. After maxNumberAttempts collisions it gives up
// with ErrNumberGenerationFailed.
func (g OrderNumberGenerator) Generate(ctx context.Context, index OrderNumberIndex) (string, error) {
	date := g.now().Format("20060102")

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := fmt.Sprintf("ORD-%s-%04d", date, rand.IntN(10000)) //nolint:gosec // uniqueness, not secrecy

		taken, err := index.ExistsWithNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}

	return "", ErrNumberGenerationFailed
}
