package ports

import (
	"context"
	"errors"

	"github.com/shopmesh/shopmesh/internal/domains/orders/domain"
)

// ErrNotFound is returned when no order with the given identifier exists.
var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
