package commands

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)

	// ErrDuplicateItems is returned when the item list references the same
	// product more than once. Duplicates are rejected, not merged, so the
	// client can correct its request explicitly.
	ErrDuplicateItems = errors.New("items contain duplicate product ids")
)

// ItemRequest is one requested order line: a product and a positive quantity
// in whole sale units.
type ItemRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand represents a validated request to create an order
// against finite inventory.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customerID, []ItemRequest{{ProductID: p1, Quantity: 2}}, nil, "cash")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	items         []ItemRequest
	addressID     *kernel.UUID
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the customer id is valid, the item list is non-empty with
// positive quantities and no duplicate product ids, and the payment method
// tag is present. The address id is optional; resolution happens in the
// handler.
func NewPlaceOrderCommand(
	customerID kernel.UUID,
	items []ItemRequest,
	addressID *kernel.UUID,
	paymentMethod string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setAddressID(addressID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the requested order lines.
func (c PlaceOrderCommand) Items() []ItemRequest {
	return c.items
}

// AddressID returns the requested delivery address, or nil when the
// customer's default address should be used.
func (c PlaceOrderCommand) AddressID() *kernel.UUID {
	return c.addressID
}

// PaymentMethod returns the settlement metadata tag.
func (c PlaceOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
		key := item.ProductID.String()
		if _, dup := seen[key]; dup {
			return ErrDuplicateItems
		}
		seen[key] = struct{}{}
	}

	c.items = items
	return nil
}

func (c *PlaceOrderCommand) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	c.addressID = addressID
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	c.paymentMethod = paymentMethod
	return nil
}
