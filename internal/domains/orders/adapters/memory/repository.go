// Package memory provides in-process order storage, used when no database is
// configured and by the application tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shopmesh/shopmesh/internal/domains/orders/domain"
	"github.com/shopmesh/shopmesh/internal/domains/orders/ports"
)

// Repository is a mutex-guarded map of orders.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

var _ ports.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{orders: make(map[string]*domain.Order)}
}

// Save upserts an order, assigning an identifier if missing.
func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneOrder(order)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.orders[stored.ID] = stored
	return cloneOrder(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, cloneOrder(order))
	}
	return result, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	return &clone
}
