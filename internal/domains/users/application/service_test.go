package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/internal/domains/users/adapters/memory"
	"github.com/shopmesh/shopmesh/internal/domains/users/domain"
	"github.com/shopmesh/shopmesh/internal/domains/users/ports"
)

func TestCreateUser_Success(t *testing.T) {
	svc := NewService(memory.NewRepository())

	user, err := domain.NewUser("Ada", "ada@example.com", "+123", "")
	require.NoError(t, err)

	saved, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "ada@example.com", saved.Email)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	_, err := domain.NewUser("Ada", "not-an-email", "", "")
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := NewService(memory.NewRepository())

	first, err := domain.NewUser("Ada", "ada@example.com", "", "")
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), first)
	require.NoError(t, err)

	second, err := domain.NewUser("Grace", "ada@example.com", "", "")
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), second)
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	svc := NewService(memory.NewRepository())

	user, err := domain.NewUser("Ada", "ada@example.com", "", "")
	require.NoError(t, err)
	saved, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	phone := "+49123"
	updated, err := svc.UpdateUser(context.Background(), saved.ID, ports.UserUpdate{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, updated.Phone)
	require.Equal(t, "Ada", updated.Name)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository())
	require.ErrorIs(t, svc.DeleteUser(context.Background(), "missing"), ports.ErrNotFound)
}
