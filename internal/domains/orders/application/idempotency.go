package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopmesh/shopmesh/internal/domains/orders/application/types"
)

// FingerprintPlaceOrder derives a deterministic hash of a placement payload.
// The idempotency key itself is excluded: the key names the attempt, the
// fingerprint proves the retried payload is the same one.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	normalized := struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}{
		UserID:    strings.TrimSpace(input.UserID),
		ProductID: strings.TrimSpace(input.ProductID),
		Quantity:  input.Quantity,
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("fingerprint placement payload: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
