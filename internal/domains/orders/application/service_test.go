package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/internal/domains/orders/adapters/memory"
	"github.com/shopmesh/shopmesh/internal/domains/orders/application/types"
	"github.com/shopmesh/shopmesh/internal/domains/orders/domain"
	"github.com/shopmesh/shopmesh/internal/domains/orders/ports"
)

type fakeResolver struct {
	userErr      error
	productErr   error
	price        decimal.Decimal
	stock        int
	userCalls    int
	productCalls int
}

func (f *fakeResolver) ResolveUser(_ context.Context, id string) (*ports.UserSnapshot, error) {
	f.userCalls++
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &ports.UserSnapshot{ID: id, Name: "Ada", Email: "ada@example.com"}, nil
}

func (f *fakeResolver) ResolveProduct(_ context.Context, id string) (*ports.ProductSnapshot, error) {
	f.productCalls++
	if f.productErr != nil {
		return nil, f.productErr
	}
	return &ports.ProductSnapshot{ID: id, Name: "Keyboard", Price: f.price, Stock: f.stock}, nil
}

func placementInput() types.PlaceOrderInput {
	return types.PlaceOrderInput{UserID: "u-1", ProductID: "p-1", Quantity: 3}
}

func TestPlaceOrder_Success(t *testing.T) {
	resolver := &fakeResolver{price: decimal.RequireFromString("19.99"), stock: 10}
	svc := NewService(memory.NewRepository(), resolver, nil)

	order, err := svc.PlaceOrder(context.Background(), placementInput())
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, domain.StatusPending, order.Status)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("59.97")),
		"got %s", order.TotalPrice)
	require.Equal(t, 1, resolver.userCalls)
	require.Equal(t, 1, resolver.productCalls)
}

func TestPlaceOrder_UnknownUserSkipsProductLookup(t *testing.T) {
	resolver := &fakeResolver{userErr: ports.ErrEntityNotFound}
	svc := NewService(memory.NewRepository(), resolver, nil)

	_, err := svc.PlaceOrder(context.Background(), placementInput())
	require.ErrorIs(t, err, ErrInvalidUser)
	require.Zero(t, resolver.productCalls, "product must not be consulted after user failure")
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	resolver := &fakeResolver{productErr: ports.ErrEntityNotFound}
	svc := NewService(memory.NewRepository(), resolver, nil)

	_, err := svc.PlaceOrder(context.Background(), placementInput())
	require.ErrorIs(t, err, ErrInvalidProduct)
}

func TestPlaceOrder_UnavailableDependencyCommitsNothing(t *testing.T) {
	resolver := &fakeResolver{
		userErr: &ports.UnavailableError{Service: "user-service", Err: errors.New("connection refused")},
	}
	repo := memory.NewRepository()
	svc := NewService(repo, resolver, nil)

	_, err := svc.PlaceOrder(context.Background(), placementInput())
	var dep *DependencyError
	require.ErrorAs(t, err, &dep)
	require.Equal(t, "user-service", dep.Service)

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceOrder_BadUpstreamPayloadIsDependencyFailure(t *testing.T) {
	resolver := &fakeResolver{productErr: ports.ErrBadUpstreamPayload}
	svc := NewService(memory.NewRepository(), resolver, nil)

	_, err := svc.PlaceOrder(context.Background(), placementInput())
	var dep *DependencyError
	require.ErrorAs(t, err, &dep)
	require.NotErrorIs(t, err, ErrInvalidProduct)
}

func TestPlaceOrder_RejectsBadInputBeforeAnyLookup(t *testing.T) {
	resolver := &fakeResolver{price: decimal.NewFromInt(1)}
	svc := NewService(memory.NewRepository(), resolver, nil)

	cases := []types.PlaceOrderInput{
		{UserID: "", ProductID: "p-1", Quantity: 1},
		{UserID: "u-1", ProductID: "", Quantity: 1},
		{UserID: "u-1", ProductID: "p-1", Quantity: 0},
		{UserID: "u-1", ProductID: "p-1", Quantity: -2},
	}
	for _, input := range cases {
		_, err := svc.PlaceOrder(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
	require.Zero(t, resolver.userCalls)
	require.Zero(t, resolver.productCalls)
}

func TestPlaceOrder_IdempotentReplayReturnsOriginal(t *testing.T) {
	resolver := &fakeResolver{price: decimal.RequireFromString("5.00")}
	repo := memory.NewRepository()
	svc := NewService(repo, resolver, memory.NewIdempotencyStore())

	input := placementInput()
	input.IdempotencyKey = "key-1"

	first, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, resolver.userCalls, "replay must not hit peer services again")

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestPlaceOrder_IdempotencyKeyReusedWithDifferentPayload(t *testing.T) {
	resolver := &fakeResolver{price: decimal.RequireFromString("5.00")}
	svc := NewService(memory.NewRepository(), resolver, memory.NewIdempotencyStore())

	input := placementInput()
	input.IdempotencyKey = "key-1"
	_, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	input.Quantity = 7
	_, err = svc.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestUpdateOrderStatus(t *testing.T) {
	resolver := &fakeResolver{price: decimal.NewFromInt(2)}
	svc := NewService(memory.NewRepository(), resolver, nil)

	order, err := svc.PlaceOrder(context.Background(), placementInput())
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, domain.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, updated.Status)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, domain.StatusCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, domain.Status("shipped"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateOrderStatus(context.Background(), "missing", domain.StatusCompleted)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetOrder_RequiresID(t *testing.T) {
	svc := NewService(memory.NewRepository(), &fakeResolver{}, nil)
	_, err := svc.GetOrder(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}
