// Package session persists analysis checkpoints so an interrupted run can
// be resumed without re-billing the model. Payloads are opaque JSON; the
// store neither inspects nor versions them. Writes are last-write-wins.
package session

import (
	"context"
	"encoding/json"
)

// Store is the checkpoint store. Get reports found=false for unknown keys
// rather than an error; errors are reserved for storage failures.
type Store interface {
	Get(ctx context.Context, key string) (payload json.RawMessage, found bool, err error)
	Set(ctx context.Context, key string, payload json.RawMessage) error
	Delete(ctx context.Context, key string) error
}
