package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/product"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

var (
	// ErrNoAddress is returned when no delivery address can be resolved for
	// the customer: the supplied id does not belong to them, they have no
	// default address, and they do not have exactly one address.
	ErrNoAddress = errors.New("no delivery address could be resolved")

	// ErrBelowMinimumOrder is returned when the order subtotal, before the
	// delivery fee, is under the configured minimum.
	ErrBelowMinimumOrder = errors.New("order subtotal is below the configured minimum")

	// ErrStockValidation classifies order requests rejected because one or
	// more items could not be covered by available stock.
	ErrStockValidation = errors.New("stock validation failed")
)

// StockIssue describes one item that failed stock validation.
type StockIssue struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

// StockValidationError lists every offending item of a rejected order
// request, so the client can correct its whole request in one round trip
// instead of discovering failures one by one.
type StockValidationError struct {
	Issues []StockIssue
}

func (e *StockValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = fmt.Sprintf("product %s: requested %d, available %d",
			issue.ProductID, issue.Requested, issue.Available)
	}
	return fmt.Sprintf("%s: %s", ErrStockValidation, strings.Join(parts, "; "))
}

func (e *StockValidationError) Unwrap() error {
	return ErrStockValidation
}

// PlaceOrderCommandHandler runs the order creation transaction: address
// resolution, product validation, inventory reservation, total computation,
// order number generation, and order persistence — all as one atomic unit.
//
// Either every item's stock is decremented and the order exists, or nothing
// changed. The stock decrement and the order insert share the same database
// transaction, so a crash between the two cannot leave a partial write.
type PlaceOrderCommandHandler struct {
	uowFactory    PlacementUoWFactory
	addressReader ports.AddressReader
	numberGen     services.OrderNumberGenerator
	settings      Settings
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Settings carry the delivery fee and minimum order snapshot applied to
// every order this handler creates.
func NewPlaceOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	addressReader ports.AddressReader,
	numberGen services.OrderNumberGenerator,
	settings Settings,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:    uowFactory,
		addressReader: addressReader,
		numberGen:     numberGen,
		settings:      settings,
	}
}

// Handle processes the order placement command and returns the persisted
// order. Validation failures, business rejections, and not-found conditions
// come back as typed errors with the transaction rolled back; the caller's
// cart state should only be cleared after a nil error.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, placeOrderTimeout)
	defer cancel()

	addressID, err := h.resolveAddress(ctx, cmd.CustomerID(), cmd.AddressID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, wrapTimeout(err, "place order")
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	items, subtotal, err := h.reserveItems(ctx, productRepo, cmd.Items())
	if err != nil {
		return nil, wrapTimeout(err, "place order")
	}

	if subtotal.IsLessThan(h.settings.MinimumOrder) {
		return nil, ErrBelowMinimumOrder
	}

	number, err := h.numberGen.Generate(ctx, orderRepo)
	if err != nil {
		return nil, wrapTimeout(err, "place order")
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		cmd.CustomerID(),
		addressID,
		items,
		subtotal,
		h.settings.DeliveryFee,
		cmd.PaymentMethod(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, wrapTimeout(err, "place order")
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, wrapTimeout(err, "place order")
	}

	return created, nil
}

// resolveAddress picks the delivery address: the supplied id if it belongs
// to the customer, else the customer's default address, else their only
// address, else ErrNoAddress.
func (h PlaceOrderCommandHandler) resolveAddress(
	ctx context.Context,
	customerID kernel.UUID,
	requested *kernel.UUID,
) (kernel.UUID, error) {
	addresses, err := h.addressReader.GetForCustomer(ctx, customerID)
	if err != nil {
		return kernel.UUID{}, err
	}

	if requested != nil {
		for _, addr := range addresses {
			if addr.ID.IsEqual(*requested) {
				return addr.ID, nil
			}
		}
	}

	for _, addr := range addresses {
		if addr.IsDefault {
			return addr.ID, nil
		}
	}

	if len(addresses) == 1 {
		return addresses[0].ID, nil
	}

	return kernel.UUID{}, ErrNoAddress
}

// reserveItems loads the requested products, reserves stock for every item,
// and builds the order lines with price snapshots. Insufficient-stock
// failures are collected across all items and reported together; any other
// failure aborts immediately.
func (h PlaceOrderCommandHandler) reserveItems(
	ctx context.Context,
	productRepo ports.ProductRepository,
	requests []ItemRequest,
) ([]order.Item, kernel.Money, error) {
	zero, err := kernel.NewMoney(0)
	if err != nil {
		return nil, kernel.Money{}, err
	}

	ids := make([]kernel.UUID, len(requests))
	for i, req := range requests {
		ids[i] = req.ProductID
	}

	products, err := productRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, kernel.Money{}, err
	}

	for _, req := range requests {
		p, ok := products[req.ProductID.String()]
		if !ok {
			return nil, kernel.Money{}, errs.NewObjectNotFoundError("product", req.ProductID.String())
		}
		if !p.IsActive() {
			return nil, kernel.Money{}, fmt.Errorf("product %s: %w", req.ProductID, product.ErrProductInactive)
		}
	}

	var issues []StockIssue
	items := make([]order.Item, 0, len(requests))
	subtotal := zero

	for _, req := range requests {
		p := products[req.ProductID.String()]

		if _, reserveErr := productRepo.Reserve(ctx, req.ProductID, req.Quantity); reserveErr != nil {
			var insufficient *product.InsufficientStockError
			if errors.As(reserveErr, &insufficient) {
				issues = append(issues, StockIssue{
					ProductID: insufficient.ProductID,
					Requested: insufficient.Requested,
					Available: insufficient.Available,
				})
				continue
			}
			return nil, kernel.Money{}, reserveErr
		}

		lineSubtotal, priceErr := p.PriceFor(req.Quantity)
		if priceErr != nil {
			return nil, kernel.Money{}, priceErr
		}

		item, itemErr := order.NewItem(p.ID(), p.Name(), req.Quantity, p.UnitPrice(), lineSubtotal)
		if itemErr != nil {
			return nil, kernel.Money{}, itemErr
		}

		items = append(items, item)
		subtotal = subtotal.Add(lineSubtotal)
	}

	if len(issues) > 0 {
		return nil, kernel.Money{}, &StockValidationError{Issues: issues}
	}

	return items, subtotal, nil
}
