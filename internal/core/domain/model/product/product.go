package product

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product represents a catalog item with finite stock.
//
// Product follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - Unit value must be positive; stock must never be negative
//   - Stock is decremented only through the inventory ledger's reserve
//     operation (a conditional update in the same transaction that creates
//     the order); the aggregate itself only answers availability questions
//
// Catalog maintenance (creation, price edits, restock) belongs to an admin
// collaborator outside this core; the fulfillment core reads products and
// decrements their stock.
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// name is the display name snapshotted into order items
	name string

	// unitPrice is the price per unitValue of the sale unit, in paise
	unitPrice kernel.Money

	// unit is the sale unit label ("kg", "g", "pc")
	unit string

	// unitValue is the number of sale units the unit price covers
	unitValue int

	// stock is the quantity available, in whole sale units
	stock int

	// active marks whether the product can be ordered
	active bool

	// isConstructed ensures the product was created via a constructor
	isConstructed bool
}

// NewProduct creates a new Product with validation.
// Stock must be non-negative and unitValue positive; the product starts active.
func NewProduct(id kernel.UUID, name string, unitPrice kernel.Money, unit string, unitValue, stock int) (*Product, error) {
	p := &Product{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setUnit(unit),
		p.setUnitValue(unitValue),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	p.unitPrice = unitPrice
	return p, nil
}

// RestoreProduct reconstructs a Product from persistence, including its
// active flag. The same invariants as NewProduct apply.
func RestoreProduct(
	id kernel.UUID,
	name string,
	unitPrice kernel.Money,
	unit string,
	unitValue, stock int,
	active bool,
) (*Product, error) {
	p, err := NewProduct(id, name, unitPrice, unit, unitValue, stock)
	if err != nil {
		return nil, err
	}

	p.active = active
	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// UnitPrice returns the price per unitValue sale units.
func (p *Product) UnitPrice() kernel.Money {
	return p.unitPrice
}

// Unit returns the sale unit label.
func (p *Product) Unit() string {
	return p.unit
}

// UnitValue returns the number of sale units the unit price covers.
func (p *Product) UnitValue() int {
	return p.unitValue
}

// Stock returns the available quantity in whole sale units.
func (p *Product) Stock() int {
	return p.stock
}

// IsActive reports whether the product can currently be ordered.
func (p *Product) IsActive() bool {
	return p.active
}

// HasStock reports whether the product can cover the requested quantity.
// This is an advisory read; the authoritative check-and-decrement happens
// in the inventory ledger's reserve operation.
func (p *Product) HasStock(qty int) bool {
	return qty > 0 && p.stock >= qty
}

// PriceFor computes the price of the requested quantity:
// unit price / unit value * quantity, in integer paise.
func (p *Product) PriceFor(qty int) (kernel.Money, error) {
	return p.unitPrice.MulDiv(int64(qty), int64(p.unitValue))
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	p.unit = unit
	return nil
}

func (p *Product) setUnitValue(unitValue int) error {
	if unitValue <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit value",
			fmt.Errorf("%d is not greater than 0", unitValue))
	}
	p.unitValue = unitValue
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
