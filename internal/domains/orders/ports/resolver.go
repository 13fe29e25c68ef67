package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrEntityNotFound means the owning service confirmed the reference does
	// not exist. A deterministic input problem, not an outage.
	ErrEntityNotFound = errors.New("referenced entity does not exist")
	// ErrBadUpstreamPayload means the owning service answered but the payload
	// could not be interpreted as the expected entity.
	ErrBadUpstreamPayload = errors.New("owning service returned an unusable payload")
)

// UnavailableError reports that the owning service could not be consulted at
// all: connection failure, timeout, or an unexpected status.
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// UserSnapshot is the point-in-time view of a user taken during placement.
type UserSnapshot struct {
	ID    string
	Name  string
	Email string
}

// ProductSnapshot is the point-in-time view of a product taken during
// placement. Price is the unit price the order total is derived from.
type ProductSnapshot struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
}

// ReferenceResolver answers whether an opaque reference exists in its owning
// service at this instant, returning the owning record's snapshot. No
// reservation or locking happens upstream; the answer can be stale the moment
// it arrives.
type ReferenceResolver interface {
	ResolveUser(ctx context.Context, id string) (*UserSnapshot, error)
	ResolveProduct(ctx context.Context, id string) (*ProductSnapshot, error)
}
