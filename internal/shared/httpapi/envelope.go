// Package httpapi provides the JSON response envelope shared by every service.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every data-bearing response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK writes a success envelope with the given status code.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail writes a failure envelope with the given status code.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Error: message})
}

// Health reports process liveness. It must not touch any remote dependency:
// liveness reflects only the local process, never peer reachability.
func Health(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": service})
	}
}

// Metrics renders a point-in-time snapshot of the process metrics.
func Metrics(snapshot func(ctx context.Context) (map[string]any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := snapshot(c.Request.Context())
		if err != nil {
			Fail(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, values)
	}
}
