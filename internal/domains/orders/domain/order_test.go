package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_ComputesTotal(t *testing.T) {
	order, err := NewOrder("u-1", "p-1", 3, decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, StatusPending, order.Status)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("59.97")),
		"got %s", order.TotalPrice)
	require.False(t, order.CreatedAt.IsZero())
}

func TestNewOrder_RejectsBadInput(t *testing.T) {
	_, err := NewOrder("", "p-1", 1, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrEmptyUserRef)

	_, err = NewOrder("u-1", "  ", 1, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrEmptyProductRef)

	_, err = NewOrder("u-1", "p-1", 0, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder("u-1", "p-1", -4, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestTransitionTo(t *testing.T) {
	order, err := NewOrder("u-1", "p-1", 1, decimal.NewFromInt(5))
	require.NoError(t, err)

	require.NoError(t, order.TransitionTo(StatusCompleted))
	require.Equal(t, StatusCompleted, order.Status)

	require.ErrorIs(t, order.TransitionTo(StatusCancelled), ErrFinalStatus)
	require.ErrorIs(t, order.TransitionTo(Status("shipped")), ErrInvalidStatus)

	// Re-asserting the terminal status is a no-op, not a violation.
	require.NoError(t, order.TransitionTo(StatusCompleted))
}
