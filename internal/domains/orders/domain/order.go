package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates order progression. Pending is the initial state; the
// other two are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrEmptyUserRef    = errors.New("user reference is required")
	ErrEmptyProductRef = errors.New("product reference is required")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrFinalStatus     = errors.New("order status can no longer change")
)

// Order models a purchase committed by the order service. UserID and
// ProductID are opaque references into peer services: they were valid at the
// instant of creation and are never re-resolved or enforced afterwards.
// TotalPrice is the priced snapshot taken at creation, never recomputed.
type Order struct {
	ID         string
	UserID     string
	ProductID  string
	Quantity   int
	TotalPrice decimal.Decimal
	Status     Status
	CreatedAt  time.Time
}

// NewOrder validates and constructs a pending order with a fresh identifier,
// snapshotting unitPrice × quantity as the total.
func NewOrder(userID, productID string, quantity int, unitPrice decimal.Decimal) (*Order, error) {
	order := &Order{
		ID:         uuid.NewString(),
		UserID:     strings.TrimSpace(userID),
		ProductID:  strings.TrimSpace(productID),
		Quantity:   quantity,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID == "" {
		return ErrEmptyUserRef
	}
	if o.ProductID == "" {
		return ErrEmptyProductRef
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// TransitionTo moves the order to the requested status. Only pending orders
// may transition; completed and cancelled are terminal.
func (o *Order) TransitionTo(status Status) error {
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	if o.Status != StatusPending && o.Status != status {
		return ErrFinalStatus
	}
	o.Status = status
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
