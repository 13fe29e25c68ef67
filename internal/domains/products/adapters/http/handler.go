// Package http maps the product service HTTP contract onto the application service.
package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shopmesh/shopmesh/internal/domains/products/application"
	"github.com/shopmesh/shopmesh/internal/domains/products/domain"
	"github.com/shopmesh/shopmesh/internal/domains/products/ports"
	"github.com/shopmesh/shopmesh/internal/shared/httpapi"
)

// Handler serves /api/products.
type Handler struct {
	service ports.Service
}

func NewHandler(service ports.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the product routes on the router.
func (h *Handler) Register(router gin.IRouter) {
	group := router.Group("/api/products")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURLs   []string        `json:"imageUrls"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURLs   *[]string        `json:"imageUrls"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURLs   []string        `json:"imageUrls,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (h *Handler) create(c *gin.Context) {
	var payload createProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	product, err := domain.NewProduct(payload.Name, payload.Description, payload.Price, payload.Stock, payload.ImageURLs)
	if err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusCreated, toResponse(saved))
}

func (h *Handler) list(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]productResponse, 0, len(products))
	for _, product := range products {
		result = append(result, toResponse(product))
	}
	httpapi.OK(c, http.StatusOK, result)
}

func (h *Handler) get(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, toResponse(product))
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var payload updateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.service.UpdateProduct(c.Request.Context(), id, ports.ProductUpdate{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		ImageURLs:   payload.ImageURLs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		httpapi.Fail(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, application.ErrInvalidInput):
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
	default:
		httpapi.Fail(c, http.StatusInternalServerError, err.Error())
	}
}

func toResponse(product *domain.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURLs:   product.ImageURLs,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
