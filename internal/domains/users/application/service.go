package application

import (
	"context"
	"errors"
	"strings"

	"github.com/shopmesh/shopmesh/internal/domains/users/domain"
	"github.com/shopmesh/shopmesh/internal/domains/users/ports"
)

// Service exposes the user bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser applies the non-nil fields of the update to the stored aggregate.
func (s *Service) UpdateUser(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if err := existing.SetName(*update.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Email != nil {
		if err := existing.SetEmail(*update.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Phone != nil {
		existing.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Address != nil {
		existing.Address = strings.TrimSpace(*update.Address)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
