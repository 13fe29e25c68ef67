//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/internal/clients/http/lookup"
	pacttest "github.com/shopmesh/shopmesh/test/pact"
)

var jsonContentType = matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

func TestUserLookupContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.UserProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	userBodyMatcher := matchers.Map{
		"success": matchers.Like(true),
		"data": matchers.Map{
			"id":    matchers.Like(pacttest.ExistingUserID),
			"name":  matchers.Like(pacttest.ExampleUserName),
			"email": matchers.Like(pacttest.ExampleUserEmail),
		},
	}

	pact.AddInteraction().
		Given(pacttest.StateUserExists).
		UponReceiving("a lookup for an existing user").
		WithRequest("GET", "/api/users/"+pacttest.ExistingUserID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(userBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateUserMissing).
		UponReceiving("a lookup for a missing user").
		WithRequest("GET", "/api/users/"+pacttest.MissingEntityID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(false),
				"error":   matchers.Like("User not found"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := lookup.NewClient(
			pacttest.UserProviderName,
			fmt.Sprintf("http://%s:%d", host, config.Port),
			&http.Client{Timeout: 10 * time.Second},
		)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := client.GetUser(ctx, pacttest.ExistingUserID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if user.ID != pacttest.ExistingUserID {
			return fmt.Errorf("expected user id %s, got %s", pacttest.ExistingUserID, user.ID)
		}

		if _, err := client.GetUser(ctx, pacttest.MissingEntityID); !errors.Is(err, lookup.ErrNotFound) {
			return fmt.Errorf("expected ErrNotFound for missing user, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestProductLookupContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProductProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	productBodyMatcher := matchers.Map{
		"success": matchers.Like(true),
		"data": matchers.Map{
			"id":    matchers.Like(pacttest.ExistingProductID),
			"name":  matchers.Like(pacttest.ExampleProductName),
			"price": matchers.Term(pacttest.ExampleProductPrice, `\d+(\.\d+)?`),
			"stock": matchers.Like(pacttest.ExampleProductStock),
		},
	}

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a lookup for an existing product").
		WithRequest("GET", "/api/products/"+pacttest.ExistingProductID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a lookup for a missing product").
		WithRequest("GET", "/api/products/"+pacttest.MissingEntityID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(false),
				"error":   matchers.Like("Product not found"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := lookup.NewClient(
			pacttest.ProductProviderName,
			fmt.Sprintf("http://%s:%d", host, config.Port),
			&http.Client{Timeout: 10 * time.Second},
		)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		product, err := client.GetProduct(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product.ID != pacttest.ExistingProductID {
			return fmt.Errorf("expected product id %s, got %s", pacttest.ExistingProductID, product.ID)
		}
		if product.Price.IsNegative() {
			return fmt.Errorf("expected non-negative price, got %s", product.Price)
		}

		if _, err := client.GetProduct(ctx, pacttest.MissingEntityID); !errors.Is(err, lookup.ErrNotFound) {
			return fmt.Errorf("expected ErrNotFound for missing product, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}
