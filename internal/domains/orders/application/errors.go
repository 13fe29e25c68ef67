package application

import (
	"errors"
	"fmt"

	"github.com/shopmesh/shopmesh/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput wraps domain validation failures so transports can map
	// them to a client error without knowing every domain sentinel.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidUser means the referenced user does not exist in the user service.
	ErrInvalidUser = errors.New("invalid user: user does not exist")
	// ErrInvalidProduct means the referenced product does not exist in the
	// product service.
	ErrInvalidProduct = errors.New("invalid product: product does not exist")
	// ErrInvalidTransition means the order is already in a terminal status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrStore wraps persistence failures after validation succeeded.
	ErrStore = errors.New("order store failure")
)

// DependencyError means a peer service could not give a usable answer, so the
// validity of the reference is unknown. Callers should retry later; nothing
// was committed.
type DependencyError struct {
	Service string
	Err     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s did not answer: %v", e.Service, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrFinalStatus):
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrEmptyUserRef),
		errors.Is(err, domain.ErrEmptyProductRef),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
