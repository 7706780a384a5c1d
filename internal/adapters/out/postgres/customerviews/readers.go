// Package customerviews reads customer and address projections owned by the
// platform's customer service. The fulfillment core never writes these
// tables; it only resolves delivery addresses and notification recipients.
package customerviews

import (
	"context"
	"database/sql"
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAddressReader implements ports.AddressReader over the customer
// addresses projection.
type GormAddressReader struct {
	db *gorm.DB
}

// NewGormAddressReader creates an address reader over the given connection.
func NewGormAddressReader(db *gorm.DB) GormAddressReader {
	return GormAddressReader{db: db}
}

// GetForCustomer returns all addresses registered for the customer, default
// address first.
func (r GormAddressReader) GetForCustomer(ctx context.Context, customerID kernel.UUID) ([]ports.Address, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).
		Raw(`SELECT id, is_default
		     FROM customer_addresses
		     WHERE customer_id = ?
		     ORDER BY is_default DESC, created_at`, customerID.Bytes()).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []ports.Address
	for rows.Next() {
		var id uuid.UUID
		var isDefault bool
		if err := rows.Scan(&id, &isDefault); err != nil {
			return nil, err
		}

		addressID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, ports.Address{ID: addressID, IsDefault: isDefault})
	}

	return addresses, rows.Err()
}

// GormCustomerReader implements ports.CustomerReader over the customers
// projection.
type GormCustomerReader struct {
	db *gorm.DB
}

// NewGormCustomerReader creates a customer reader over the given connection.
func NewGormCustomerReader(db *gorm.DB) GormCustomerReader {
	return GormCustomerReader{db: db}
}

// Get returns the name/phone summary for one customer.
func (r GormCustomerReader) Get(ctx context.Context, customerID kernel.UUID) (ports.CustomerSummary, error) {
	if err := customerID.Validate(); err != nil {
		return ports.CustomerSummary{}, err
	}

	var id uuid.UUID
	var name, phone string
	row := r.db.WithContext(ctx).
		Raw(`SELECT id, name, phone FROM customers WHERE id = ?`, customerID.Bytes()).
		Row()
	if err := row.Scan(&id, &name, &phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.CustomerSummary{}, errs.NewObjectNotFoundError("customer", customerID.String())
		}
		return ports.CustomerSummary{}, err
	}

	summary := ports.CustomerSummary{Name: name, Phone: phone}
	summaryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ports.CustomerSummary{}, err
	}
	summary.ID = summaryID

	return summary, nil
}
