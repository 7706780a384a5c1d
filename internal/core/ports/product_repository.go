// Package ports defines repository and collaborator interfaces for the
// fulfillment core. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/product"
)

// ProductRepository is the inventory ledger's persistence contract.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany retrieves the products for the given ids, keyed by id string.
	// Missing ids are simply absent from the result; the caller decides
	// whether absence is an error.
	GetMany(ctx context.Context, ids []kernel.UUID) (map[string]*product.Product, error)

	// Reserve atomically decrements a product's stock by qty if and only if
	// sufficient stock remains, returning the new stock level.
	//
	// The check and the decrement execute as one conditional update against
	// the repository's current transaction, so two concurrent reservations
	// whose combined quantity exceeds the available stock can never both
	// succeed. Returns ErrInsufficientStock when stock does not cover qty,
	// or an ObjectNotFoundError when the product does not exist.
	Reserve(ctx context.Context, id kernel.UUID, qty int) (int, error)
}
