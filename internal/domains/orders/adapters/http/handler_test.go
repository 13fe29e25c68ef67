package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/internal/domains/orders/adapters/memory"
	"github.com/shopmesh/shopmesh/internal/domains/orders/adapters/workflows"
	"github.com/shopmesh/shopmesh/internal/domains/orders/application"
	"github.com/shopmesh/shopmesh/internal/domains/orders/ports"
)

type stubResolver struct {
	userErr    error
	productErr error
	price      decimal.Decimal
}

func (s *stubResolver) ResolveUser(_ context.Context, id string) (*ports.UserSnapshot, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return &ports.UserSnapshot{ID: id}, nil
}

func (s *stubResolver) ResolveProduct(_ context.Context, id string) (*ports.ProductSnapshot, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return &ports.ProductSnapshot{ID: id, Price: s.price, Stock: 5}, nil
}

func newRouter(resolver ports.ReferenceResolver) (*gin.Engine, *memory.Repository) {
	gin.SetMode(gin.TestMode)
	repo := memory.NewRepository()
	service := application.NewService(repo, resolver, memory.NewIdempotencyStore())
	handler := NewHandler(workflows.NewInlineOrderWorkflows(service), service)
	router := gin.New()
	handler.Register(router)
	return router, repo
}

func doJSON(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPlaceOrder_Created(t *testing.T) {
	router, _ := newRouter(&stubResolver{price: decimal.RequireFromString("19.99")})

	recorder := doJSON(router, http.MethodPost, "/api/orders",
		`{"userId":"u-1","productId":"p-1","quantity":3}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			ID         string `json:"id"`
			TotalPrice string `json:"totalPrice"`
			Status     string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.ID)
	require.Equal(t, "59.97", envelope.Data.TotalPrice)
	require.Equal(t, "pending", envelope.Data.Status)
}

func TestPlaceOrder_BadQuantity(t *testing.T) {
	router, _ := newRouter(&stubResolver{price: decimal.NewFromInt(1)})

	recorder := doJSON(router, http.MethodPost, "/api/orders",
		`{"userId":"u-1","productId":"p-1","quantity":0}`, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPlaceOrder_UnknownUserIs400(t *testing.T) {
	router, _ := newRouter(&stubResolver{userErr: ports.ErrEntityNotFound})

	recorder := doJSON(router, http.MethodPost, "/api/orders",
		`{"userId":"ghost","productId":"p-1","quantity":1}`, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, recorder.Body.String(), "user does not exist")
}

func TestPlaceOrder_UnavailableDependencyIs502(t *testing.T) {
	router, _ := newRouter(&stubResolver{
		productErr: &ports.UnavailableError{Service: "product-service", Err: errors.New("timeout")},
	})

	recorder := doJSON(router, http.MethodPost, "/api/orders",
		`{"userId":"u-1","productId":"p-1","quantity":1}`, nil)
	require.Equal(t, http.StatusBadGateway, recorder.Code)
	require.Contains(t, recorder.Body.String(), "product-service")
}

func TestPlaceOrder_IdempotencyKeyReplaysAndConflicts(t *testing.T) {
	router, _ := newRouter(&stubResolver{price: decimal.NewFromInt(2)})
	headers := map[string]string{"Idempotency-Key": "key-1"}
	body := `{"userId":"u-1","productId":"p-1","quantity":2}`

	first := doJSON(router, http.MethodPost, "/api/orders", body, headers)
	require.Equal(t, http.StatusCreated, first.Code)
	second := doJSON(router, http.MethodPost, "/api/orders", body, headers)
	require.Equal(t, http.StatusCreated, second.Code)
	require.JSONEq(t, first.Body.String(), second.Body.String())

	conflict := doJSON(router, http.MethodPost, "/api/orders",
		`{"userId":"u-1","productId":"p-1","quantity":9}`, headers)
	require.Equal(t, http.StatusConflict, conflict.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	router, _ := newRouter(&stubResolver{price: decimal.NewFromInt(1)})

	recorder := doJSON(router, http.MethodGet, "/api/orders/missing", "", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Order not found")
}

func TestUpdateStatus_FlowAndTerminalRejection(t *testing.T) {
	router, _ := newRouter(&stubResolver{price: decimal.NewFromInt(1)})

	created := doJSON(router, http.MethodPost, "/api/orders",
		`{"userId":"u-1","productId":"p-1","quantity":1}`, nil)
	require.Equal(t, http.StatusCreated, created.Code)

	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &envelope))

	completed := doJSON(router, http.MethodPut, "/api/orders/"+envelope.Data.ID,
		`{"status":"completed"}`, nil)
	require.Equal(t, http.StatusOK, completed.Code)

	cancelled := doJSON(router, http.MethodPut, "/api/orders/"+envelope.Data.ID,
		`{"status":"cancelled"}`, nil)
	require.Equal(t, http.StatusConflict, cancelled.Code)

	unknown := doJSON(router, http.MethodPut, "/api/orders/"+envelope.Data.ID,
		`{"status":"shipped"}`, nil)
	require.Equal(t, http.StatusBadRequest, unknown.Code)
}

func TestPlaceOrder_ConcurrentPlacementsGetDistinctIDs(t *testing.T) {
	router, repo := newRouter(&stubResolver{price: decimal.RequireFromString("3.50")})

	const n = 16
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recorder := doJSON(router, http.MethodPost, "/api/orders",
				`{"userId":"u-1","productId":"p-1","quantity":2}`, nil)
			if recorder.Code != http.StatusCreated {
				return
			}
			var envelope struct {
				Data struct {
					ID string `json:"id"`
				} `json:"data"`
			}
			if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err == nil {
				ids[i] = envelope.Data.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, n)
	for _, order := range orders {
		require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("7.00")))
	}
}
