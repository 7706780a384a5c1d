package order

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not
	// created through the NewItem factory method.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is an immutable order line. The unit price is a snapshot taken at
// order-creation time: later product price changes never affect an existing
// order.
type Item struct {
	// productID references the ordered product
	productID kernel.UUID

	// productName is a display snapshot of the product name
	productName string

	// quantity is the ordered amount in whole sale units (positive)
	quantity int

	// unitPrice is the product's price captured at order time
	unitPrice kernel.Money

	// subtotal is unit price / unit value * quantity, computed at order time
	subtotal kernel.Money

	// isConstructed ensures the item was created via NewItem
	isConstructed bool
}

// NewItem creates an order line with a price snapshot.
// Quantity must be positive; product id must be valid.
func NewItem(productID kernel.UUID, productName string, quantity int, unitPrice, subtotal kernel.Money) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.unitPrice = unitPrice
	item.subtotal = subtotal
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductID returns the ordered product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name snapshot.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered amount in whole sale units.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns the line subtotal computed at order time.
func (i Item) Subtotal() kernel.Money {
	return i.subtotal
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
