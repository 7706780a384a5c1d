package productrepo

import (
	"context"
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/product"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the products for the given ids, keyed by id string.
// Missing ids are simply absent from the result.
func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) (map[string]*product.Product, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	products := make(map[string]*product.Product, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID().String()] = p
	}

	return products, nil
}

// Reserve atomically decrements a product's stock by qty if and only if
// sufficient stock remains, returning the new stock level.
//
// The check and the decrement are a single conditional UPDATE, so two
// concurrent reservations whose combined quantity exceeds the available
// stock can never both succeed, regardless of interleaving.
func (r *GormProductRepository) Reserve(ctx context.Context, id kernel.UUID, qty int) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	var remaining int
	result := r.db.WithContext(ctx).Raw(`
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?
		RETURNING stock
	`, qty, id.Bytes(), qty).Scan(&remaining)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, r.reserveFailure(ctx, id, qty)
	}

	return remaining, nil
}

// reserveFailure distinguishes a missing product from insufficient stock
// after a conditional update matched no row.
func (r *GormProductRepository) reserveFailure(ctx context.Context, id kernel.UUID, qty int) error {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("product", id.String())
		}
		return err
	}

	return &product.InsufficientStockError{
		ProductID: id,
		Requested: qty,
		Available: dto.Stock,
	}
}
