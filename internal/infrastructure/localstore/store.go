// Package localstore is the device-local durable key-value store backing
// client state that must survive a restart: the shopping cart, the courier
// session and the UI theme preference. Values are opaque JSON blobs under
// well-known keys, mirroring the browser localStorage model: one writer per
// process, no cross-instance coordination.
package localstore

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyCart           = "cart"
	KeyCourierSession = "courier_session"
	KeyTheme          = "theme"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("localstore: store is closed")

// Store is a durable key → blob store.
type Store interface {
	// Get returns the blob stored under key. The second return value is
	// false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores the blob under key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the key; absent keys are a no-op.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}
