//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	productshttp "github.com/shopmesh/shopmesh/internal/domains/products/adapters/http"
	productsmemory "github.com/shopmesh/shopmesh/internal/domains/products/adapters/memory"
	productsapp "github.com/shopmesh/shopmesh/internal/domains/products/application"
	productsdomain "github.com/shopmesh/shopmesh/internal/domains/products/domain"
	usershttp "github.com/shopmesh/shopmesh/internal/domains/users/adapters/http"
	usersmemory "github.com/shopmesh/shopmesh/internal/domains/users/adapters/memory"
	usersapp "github.com/shopmesh/shopmesh/internal/domains/users/application"
	usersdomain "github.com/shopmesh/shopmesh/internal/domains/users/domain"
	pacttest "github.com/shopmesh/shopmesh/test/pact"
)

func TestUserServiceHonoursLookupContract(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := usersmemory.NewRepository()
	router := gin.New()
	router.Use(gin.Recovery())
	usershttp.NewHandler(usersapp.NewService(repo)).Register(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	pactFile := requirePactFile(t, pacttest.UserProviderName)
	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.UserProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateUserExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				if setup {
					seedUser(t, repo)
				}
				return nil, nil
			},
			pacttest.StateUserMissing: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
				return nil, nil
			},
		},
	})
	require.NoError(t, err)
}

func TestProductServiceHonoursLookupContract(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := productsmemory.NewRepository()
	router := gin.New()
	router.Use(gin.Recovery())
	productshttp.NewHandler(productsapp.NewService(repo)).Register(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	pactFile := requirePactFile(t, pacttest.ProductProviderName)
	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.ProductProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				if setup {
					seedProduct(t, repo)
				}
				return nil, nil
			},
			pacttest.StateProductMissing: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
				return nil, nil
			},
		},
	})
	require.NoError(t, err)
}

func requirePactFile(t testing.TB, provider string) string {
	t.Helper()
	pactFile := filepath.ToSlash(pacttest.PactFile(t, provider))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}
	return pactFile
}

func seedUser(t testing.TB, repo *usersmemory.Repository) {
	t.Helper()
	user, err := usersdomain.NewUser(pacttest.ExampleUserName, pacttest.ExampleUserEmail, "", "")
	require.NoError(t, err)
	user.ID = pacttest.ExistingUserID
	_, err = repo.Save(context.Background(), user)
	require.NoError(t, err)
}

func seedProduct(t testing.TB, repo *productsmemory.Repository) {
	t.Helper()
	product, err := productsdomain.NewProduct(
		pacttest.ExampleProductName,
		"mechanical, clicky",
		decimal.RequireFromString(pacttest.ExampleProductPrice),
		pacttest.ExampleProductStock,
		nil,
	)
	require.NoError(t, err)
	product.ID = pacttest.ExistingProductID
	_, err = repo.Save(context.Background(), product)
	require.NoError(t, err)
}
