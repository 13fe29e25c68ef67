package ports

import (
	"context"

	"github.com/shopmesh/shopmesh/internal/domains/users/domain"
)

// Service exposes user use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserUpdate carries the optional fields of a partial update. Nil fields are
// left untouched.
type UserUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}
