package kernel

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Money is a value object representing an amount in minor currency units
// (paise). Amounts are always non-negative; arithmetic that would produce a
// negative amount is rejected at construction.
//
// Money is immutable. The zero value is a valid amount of zero paise, which
// keeps it usable for sums and as a map value.
//
// Example:
//
//	price, _ := kernel.NewMoney(10000) // ₹100.00
//	fee, _ := kernel.NewMoney(3000)
//	total := price.Add(fee)
type Money struct {
	paise int64
}

// NewMoney creates a Money amount from paise.
// Returns an error if the amount is negative.
func NewMoney(paise int64) (Money, error) {
	if paise < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d paise is negative", paise))
	}
	return Money{paise: paise}, nil
}

// Paise returns the amount in minor currency units.
func (m Money) Paise() int64 {
	return m.paise
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{paise: m.paise + other.paise}
}

// MulDiv returns the amount scaled by qty/unitValue using integer paise
// arithmetic. It is used to price a requested quantity against a product's
// per-unit price: unit price / base unit value * quantity.
func (m Money) MulDiv(qty int64, unitValue int64) (Money, error) {
	if qty <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if unitValue <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("unit value",
			fmt.Errorf("%d is not greater than 0", unitValue))
	}
	return Money{paise: m.paise * qty / unitValue}, nil
}

// IsLessThan reports whether m is strictly smaller than other.
func (m Money) IsLessThan(other Money) bool {
	return m.paise < other.paise
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.paise == other.paise
}

// String returns the amount formatted as rupees with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("₹%d.%02d", m.paise/100, m.paise%100)
}
