//go:build pact
// +build pact

// Package pacttest holds the shared names, states, and fixtures for the
// cross-service read contracts: the order service consumes the user and
// product read endpoints during placement.
package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ConsumerName        = "order-service"
	UserProviderName    = "user-service"
	ProductProviderName = "product-service"

	StateUserExists     = "user pact-user-1 exists"
	StateUserMissing    = "no user with id ghost"
	StateProductExists  = "product pact-product-1 exists"
	StateProductMissing = "no product with id ghost"
)

const (
	ExistingUserID    = "pact-user-1"
	ExistingProductID = "pact-product-1"
	MissingEntityID   = "ghost"

	ExampleUserName     = "Pact User"
	ExampleUserEmail    = "pact.user@example.com"
	ExampleProductName  = "Pact Keyboard"
	ExampleProductPrice = "79.99"
	ExampleProductStock = 3
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the given provider.
func PactFile(t testing.TB, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+provider+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
