package order

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyAssigned is returned when assigning an agent to an order
	// that already has one. Reassignment is not supported.
	ErrAlreadyAssigned = errors.New("order already has an assigned agent")

	// ErrNotAssignable is returned when an order is not in an assignable
	// status. Only pending and confirmed orders accept an agent.
	ErrNotAssignable = errors.New("order is not in an assignable status")

	// ErrInvalidTransition classifies all rejected status transitions.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrSubtotalMismatch is returned when the order subtotal does not equal
	// the sum of its line subtotals.
	ErrSubtotalMismatch = errors.New("subtotal does not match sum of item subtotals")

	orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{4}$`)
)

// InvalidTransitionError reports a rejected status transition with both ends.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Order is the aggregate root of the fulfillment core. It is created
// atomically together with its inventory reservation, advances through the
// Status state machine, and optionally binds one delivery agent.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a well-formed order number
//   - Must have at least one item; subtotal equals the sum of item subtotals
//   - Status is always a member of the defined status set
//   - The assigned agent id is nil until an assignment succeeds
//   - Orders are never deleted, only terminally statused
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable, unique order number (ORD-YYYYMMDD-NNNN)
	number string

	// customerID is the owning customer
	customerID kernel.UUID

	// addressID is the resolved delivery address
	addressID kernel.UUID

	// items are the immutable order lines with price snapshots
	items []Item

	// subtotal is the sum of item subtotals
	subtotal kernel.Money

	// deliveryFee is the fee snapshot taken from settings at order time
	deliveryFee kernel.Money

	// paymentMethod is settlement metadata only; no capture happens here
	paymentMethod string

	// status is the current state in the order lifecycle
	status Status

	// assignedAgentID is the delivery agent bound to the order (nil if none)
	assignedAgentID *kernel.UUID

	// lifecycle timestamps, stamped on first entry into the matching state
	confirmedAt      *time.Time
	pickedAt         *time.Time
	outForDeliveryAt *time.Time
	deliveredAt      *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in pending status with no agent assigned.
// The subtotal must equal the sum of the item subtotals; the caller computes
// both from the same price snapshots, so a mismatch indicates a programming
// error and is rejected.
func NewOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	addressID kernel.UUID,
	items []Item,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	paymentMethod string,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setAddressID(addressID),
		o.setItems(items),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	if err := o.setTotals(subtotal, deliveryFee); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its full
// lifecycle state. The same invariants as NewOrder apply.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	addressID kernel.UUID,
	items []Item,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	paymentMethod string,
	status Status,
	assignedAgentID *kernel.UUID,
	confirmedAt, pickedAt, outForDeliveryAt, deliveredAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, number, customerID, addressID, items, subtotal, deliveryFee, paymentMethod)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if assignedAgentID != nil {
		if err = assignedAgentID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.assignedAgentID = assignedAgentID
	o.confirmedAt = confirmedAt
	o.pickedAt = pickedAt
	o.outForDeliveryAt = outForDeliveryAt
	o.deliveredAt = deliveredAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AddressID returns the resolved delivery address identifier.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// Items returns the order lines. The returned slice must not be mutated.
func (o *Order) Items() []Item {
	return o.items
}

// Subtotal returns the sum of item subtotals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the delivery fee snapshot.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Total returns subtotal plus delivery fee.
func (o *Order) Total() kernel.Money {
	return o.subtotal.Add(o.deliveryFee)
}

// PaymentMethod returns the settlement metadata tag.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignedAgent returns the assigned delivery agent's ID, or nil.
func (o *Order) AssignedAgent() *kernel.UUID {
	return o.assignedAgentID
}

// ConfirmedAt returns when the order entered confirmed status, or nil.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// PickedAt returns when the order entered preparing status, or nil.
func (o *Order) PickedAt() *time.Time {
	return o.pickedAt
}

// OutForDeliveryAt returns when the order first entered out_for_delivery, or nil.
func (o *Order) OutForDeliveryAt() *time.Time {
	return o.outForDeliveryAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// IsAssignable reports whether the order can accept a delivery agent:
// it must be unassigned and in pending or confirmed status.
func (o *Order) IsAssignable() bool {
	return o.assignedAgentID == nil &&
		(o.status == StatusPending || o.status == StatusConfirmed)
}

// TransitionTo advances the order to the target status, stamping the
// state's lifecycle timestamp on first entry.
//
// The check is evaluated against the order's current status as loaded in
// this transaction; callers must load the order under the same transaction
// that persists the transition. Transitions are single-fire: requesting the
// status the order is already in yields an InvalidTransitionError.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(target) {
		return &InvalidTransitionError{From: o.status, To: target}
	}

	o.status = target
	o.stampEntry(target, now)
	return nil
}

// AssignAgent binds a delivery agent to the order.
//
// Preconditions: the order must be unassigned (ErrAlreadyAssigned otherwise)
// and in pending or confirmed status (ErrNotAssignable otherwise). The check
// runs against the state loaded in the current transaction.
func (o *Order) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if o.assignedAgentID != nil {
		return ErrAlreadyAssigned
	}

	if o.status != StatusPending && o.status != StatusConfirmed {
		return ErrNotAssignable
	}

	o.assignedAgentID = &agentID
	return nil
}

// stampEntry records the first entry into timestamped states.
func (o *Order) stampEntry(target Status, now time.Time) {
	switch target {
	case StatusConfirmed:
		if o.confirmedAt == nil {
			o.confirmedAt = &now
		}
	case StatusPreparing:
		if o.pickedAt == nil {
			o.pickedAt = &now
		}
	case StatusOutForDelivery:
		if o.outForDeliveryAt == nil {
			o.outForDeliveryAt = &now
		}
	case StatusDelivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &now
		}
	case StatusPending, StatusCancelled:
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	if !orderNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not match ORD-YYYYMMDD-NNNN", number))
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setTotals(subtotal, deliveryFee kernel.Money) error {
	sum, err := kernel.NewMoney(0)
	if err != nil {
		return err
	}
	for _, item := range o.items {
		sum = sum.Add(item.Subtotal())
	}
	if !sum.IsEqual(subtotal) {
		return ErrSubtotalMismatch
	}

	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	return nil
}
