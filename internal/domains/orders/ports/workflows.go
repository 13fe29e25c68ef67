package ports

import (
	"context"

	"github.com/shopmesh/shopmesh/internal/domains/orders/application/types"
	"github.com/shopmesh/shopmesh/internal/domains/orders/domain"
)

// WorkflowOrchestrator schedules order placement. The inline implementation
// runs the application service directly; the durable one hands the request to
// a workflow engine and waits for the result.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
}
