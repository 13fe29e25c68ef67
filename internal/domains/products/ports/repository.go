package ports

import (
	"context"
	"errors"

	"github.com/shopmesh/shopmesh/internal/domains/products/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists products for the product service.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Product, error)
}
