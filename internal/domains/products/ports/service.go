package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopmesh/shopmesh/internal/domains/products/domain"
)

// Service exposes product use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductUpdate carries the optional fields of a partial update. Nil fields
// are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	ImageURLs   *[]string
}
