package product

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
)

var (
	// ErrInsufficientStock classifies reservations rejected for lack of
	// stock. It is a terminal rejection for the item; no retry is attempted.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductInactive is returned when an order references a product
	// that has been deactivated.
	ErrProductInactive = errors.New("product is not active")
)

// InsufficientStockError reports a failed reservation with the quantities
// involved, so callers can tell the client exactly what to correct.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d, requested %d",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
