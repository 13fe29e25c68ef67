// Package http maps the order service HTTP contract onto the application
// service. Placement goes through the workflow orchestrator so the durable
// path and the inline path share one code path.
package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shopmesh/shopmesh/internal/domains/orders/application"
	"github.com/shopmesh/shopmesh/internal/domains/orders/application/types"
	"github.com/shopmesh/shopmesh/internal/domains/orders/domain"
	"github.com/shopmesh/shopmesh/internal/domains/orders/ports"
	"github.com/shopmesh/shopmesh/internal/shared/httpapi"
)

// Handler serves /api/orders.
type Handler struct {
	orchestrator ports.WorkflowOrchestrator
	service      ports.Service
}

func NewHandler(orchestrator ports.WorkflowOrchestrator, service ports.Service) *Handler {
	return &Handler{orchestrator: orchestrator, service: service}
}

// Register mounts the order routes on the router.
func (h *Handler) Register(router gin.IRouter) {
	group := router.Group("/api/orders")
	group.POST("", h.place)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.updateStatus)
}

type placeOrderRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	ProductID  string          `json:"productId"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (h *Handler) place(c *gin.Context) {
	var payload placeOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.orchestrator.PlaceOrder(c.Request.Context(), types.PlaceOrderInput{
		UserID:         payload.UserID,
		ProductID:      payload.ProductID,
		Quantity:       payload.Quantity,
		IdempotencyKey: strings.TrimSpace(c.GetHeader("Idempotency-Key")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusCreated, toResponse(order))
}

func (h *Handler) list(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toResponse(order))
	}
	httpapi.OK(c, http.StatusOK, result)
}

func (h *Handler) get(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, toResponse(order))
}

func (h *Handler) updateStatus(c *gin.Context) {
	var payload updateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.service.UpdateOrderStatus(c.Request.Context(), c.Param("id"), domain.Status(payload.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, toResponse(order))
}

// respondError translates the placement taxonomy to status codes. A
// dependency that cannot answer is the server side's problem, hence 502
// rather than blaming the caller's payload.
func respondError(c *gin.Context, err error) {
	var dep *application.DependencyError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		httpapi.Fail(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, application.ErrInvalidUser),
		errors.Is(err, application.ErrInvalidProduct),
		errors.Is(err, application.ErrInvalidInput):
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrInvalidTransition):
		httpapi.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrIdempotencyConflict):
		httpapi.Fail(c, http.StatusConflict, err.Error())
	case errors.As(err, &dep):
		httpapi.Fail(c, http.StatusBadGateway, dep.Error())
	default:
		httpapi.Fail(c, http.StatusInternalServerError, err.Error())
	}
}

func toResponse(order *domain.Order) orderResponse {
	return orderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
}
