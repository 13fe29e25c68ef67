// Package application orchestrates order placement: it validates the two
// remote references against their owning services, prices the order from the
// product snapshot, and commits locally. There is no distributed transaction;
// the local commit is the only write.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopmesh/shopmesh/internal/domains/orders/application/types"
	"github.com/shopmesh/shopmesh/internal/domains/orders/domain"
	"github.com/shopmesh/shopmesh/internal/domains/orders/ports"
)

// Service implements ports.Service.
type Service struct {
	repo     ports.Repository
	resolver ports.ReferenceResolver
	idem     ports.IdempotencyStore
}

var _ ports.Service = (*Service)(nil)

// NewService wires the order use cases. A nil idempotency store disables
// replay detection.
func NewService(repo ports.Repository, resolver ports.ReferenceResolver, idem ports.IdempotencyStore) *Service {
	if idem == nil {
		idem = ports.NoopIdempotencyStore{}
	}
	return &Service{repo: repo, resolver: resolver, idem: idem}
}

// PlaceOrder validates the user and product references against their owning
// services, prices the order from the product's current unit price, and
// commits it locally as pending. Validation order is fixed: user first, then
// product, failing fast on the first problem.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	userID := strings.TrimSpace(input.UserID)
	productID := strings.TrimSpace(input.ProductID)
	switch {
	case userID == "":
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrEmptyUserRef)
	case productID == "":
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrEmptyProductRef)
	case input.Quantity <= 0:
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidQuantity)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" {
		var err error
		fingerprint, err = FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		record, err := s.idem.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
		if record != nil {
			if record.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, record.OrderID)
		}
	}

	if _, err := s.resolver.ResolveUser(ctx, userID); err != nil {
		return nil, resolveFailure(err, "user-service", ErrInvalidUser)
	}
	product, err := s.resolver.ResolveProduct(ctx, productID)
	if err != nil {
		return nil, resolveFailure(err, "product-service", ErrInvalidProduct)
	}

	// Stock is part of the snapshot but is not reserved or compared against
	// the requested quantity; the product service owns inventory.
	order, err := domain.NewOrder(userID, productID, input.Quantity, product.Price)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if key != "" {
		// The order is already committed; losing the replay record only
		// weakens retry protection, so this write is best-effort.
		_, _ = s.idem.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, OrderID: saved.ID})
	}
	return saved, nil
}

// GetOrder fetches one order by identifier.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns all orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateOrderStatus transitions an order to a new status, enforcing that
// completed and cancelled are terminal.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := order.TransitionTo(status); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return saved, nil
}

// resolveFailure translates resolver outcomes into the placement error
// taxonomy: a confirmed missing entity is the caller's fault, anything else
// means the dependency did not give a usable answer.
func resolveFailure(err error, service string, missing error) error {
	var unavailable *ports.UnavailableError
	switch {
	case errors.Is(err, ports.ErrEntityNotFound):
		return missing
	case errors.As(err, &unavailable):
		return &DependencyError{Service: unavailable.Service, Err: unavailable.Err}
	default:
		return &DependencyError{Service: service, Err: err}
	}
}
