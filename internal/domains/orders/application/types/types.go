// Package types holds the inputs shared by the order application service and
// the workflow layer that schedules it.
package types

// PlaceOrderInput carries everything needed to place one order. UserID and
// ProductID are references into peer services; IdempotencyKey is optional and
// client-chosen.
type PlaceOrderInput struct {
	UserID         string `json:"userId"`
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}
