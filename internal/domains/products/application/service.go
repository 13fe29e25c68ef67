package application

import (
	"context"
	"errors"

	"github.com/shopmesh/shopmesh/internal/domains/products/domain"
	"github.com/shopmesh/shopmesh/internal/domains/products/ports"
)

// Service orchestrates the products bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// UpdateProduct applies the non-nil fields of the update to the stored aggregate.
func (s *Service) UpdateProduct(ctx context.Context, id string, update ports.ProductUpdate) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if err := existing.Rename(*update.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Price != nil {
		if err := existing.Reprice(*update.Price); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Stock != nil {
		if err := existing.Restock(*update.Stock); err != nil {
			return nil, mapError(err)
		}
	}
	if update.ImageURLs != nil {
		existing.ImageURLs = append([]string{}, (*update.ImageURLs)...)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
