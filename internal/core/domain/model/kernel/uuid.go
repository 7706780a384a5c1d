package kernel

import (
	"fmt"

	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID,
// i.e. one that did not come out of NewUUID, UUIDFromString, or
// UUIDFromBytes.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies every aggregate in the fulfillment core: orders, products,
// delivery agents, and the customer/address references the core carries but
// does not own. It wraps github.com/google/uuid so the domain never handles
// raw identifier bytes, and so the zero value is detectably invalid.
//
//	productID := kernel.NewUUID()
//	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. Every aggregate gets
// its id this way at creation time.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the textual representation of an identifier, as it
// arrives in route parameters and request bodies. All formats the underlying
// library accepts are allowed, including braced and urn-prefixed forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes reconstructs an identifier from its 16-byte binary form,
// used when mapping database rows back into aggregates. The nil UUID is
// rejected: a persisted row must never produce an invalid identifier.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical hyphenated lowercase form, which is also the
// wire and log representation.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, for the persistence layer's DTO
// columns. Slice it (`u.Bytes()[:]`) when raw bytes are needed.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two identifiers carry the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID and nil for
// anything produced by a constructor.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
