// Package external resolves order references through the HTTP lookup clients
// of the user and product services.
package external

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopmesh/shopmesh/internal/clients/http/lookup"
	"github.com/shopmesh/shopmesh/internal/domains/orders/ports"
)

// Resolver adapts two lookup clients to the order service's resolver port.
type Resolver struct {
	users    *lookup.Client
	products *lookup.Client
}

var _ ports.ReferenceResolver = (*Resolver)(nil)

func NewResolver(users, products *lookup.Client) *Resolver {
	return &Resolver{users: users, products: products}
}

func (r *Resolver) ResolveUser(ctx context.Context, id string) (*ports.UserSnapshot, error) {
	user, err := r.users.GetUser(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return &ports.UserSnapshot{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (r *Resolver) ResolveProduct(ctx context.Context, id string) (*ports.ProductSnapshot, error) {
	product, err := r.products.GetProduct(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return &ports.ProductSnapshot{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}, nil
}

// translate maps transport-level outcomes onto the resolver port's taxonomy
// so the application never imports the HTTP client package.
func translate(err error) error {
	var unreachable *lookup.UnreachableError
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		return ports.ErrEntityNotFound
	case errors.Is(err, lookup.ErrMalformedResponse):
		return fmt.Errorf("%w: %v", ports.ErrBadUpstreamPayload, err)
	case errors.As(err, &unreachable):
		return &ports.UnavailableError{Service: unreachable.Service, Err: unreachable.Err}
	default:
		return &ports.UnavailableError{Service: "unknown", Err: err}
	}
}
