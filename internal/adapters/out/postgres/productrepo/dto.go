// Package productrepo provides data transfer objects and mapping functions
// for product persistence. Products are read and stock-decremented by the
// fulfillment core; catalog maintenance happens elsewhere.
package productrepo

import (
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	Unit      string    `gorm:"not null"`
	UnitValue int       `gorm:"not null"`
	Stock     int       `gorm:"not null;check:stock >= 0"`
	Active    bool      `gorm:"not null;default:true;index"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database
// representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID().Bytes(),
		Name:      p.Name(),
		UnitPrice: p.UnitPrice().Paise(),
		Unit:      p.Unit(),
		UnitValue: p.UnitValue(),
		Stock:     p.Stock(),
		Active:    p.IsActive(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, unitPrice, dto.Unit, dto.UnitValue, dto.Stock, dto.Active)
}
