package ports

import (
	"context"
	"errors"
)

// ErrIdempotencyConflict is returned when a key is replayed with a payload
// that does not match the one it was first used with.
var ErrIdempotencyConflict = errors.New("idempotency key reused with a different payload")

// IdempotencyRecord binds a client-chosen key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     string
}

// IdempotencyStore remembers which placement requests already committed so a
// retried request returns the original order instead of a duplicate.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}

// NoopIdempotencyStore disables replay detection. Every request is treated as
// new.
type NoopIdempotencyStore struct{}

func (NoopIdempotencyStore) Get(context.Context, string) (*IdempotencyRecord, error) {
	return nil, nil
}

func (NoopIdempotencyStore) Save(_ context.Context, record IdempotencyRecord) (*IdempotencyRecord, error) {
	return &record, nil
}

var _ IdempotencyStore = NoopIdempotencyStore{}
