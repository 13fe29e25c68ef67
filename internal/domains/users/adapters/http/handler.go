// Package http maps the user service HTTP contract onto the application service.
package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopmesh/shopmesh/internal/domains/users/application"
	"github.com/shopmesh/shopmesh/internal/domains/users/domain"
	"github.com/shopmesh/shopmesh/internal/domains/users/ports"
	"github.com/shopmesh/shopmesh/internal/shared/httpapi"
)

// Handler serves /api/users.
type Handler struct {
	service ports.Service
}

func NewHandler(service ports.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the user routes on the router.
func (h *Handler) Register(router gin.IRouter) {
	group := router.Group("/api/users")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
}

type createUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type updateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *Handler) create(c *gin.Context) {
	var payload createUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := domain.NewUser(payload.Name, payload.Email, payload.Phone, payload.Address)
	if err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusCreated, toResponse(saved))
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]userResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toResponse(user))
	}
	httpapi.OK(c, http.StatusOK, result)
}

func (h *Handler) get(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, toResponse(user))
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var payload updateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.service.UpdateUser(c.Request.Context(), id, ports.UserUpdate{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	httpapi.OK(c, http.StatusOK, gin.H{"message": "User deleted"})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		httpapi.Fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ports.ErrEmailTaken):
		httpapi.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, application.ErrInvalidInput):
		httpapi.Fail(c, http.StatusBadRequest, err.Error())
	default:
		httpapi.Fail(c, http.StatusInternalServerError, err.Error())
	}
}

func toResponse(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
