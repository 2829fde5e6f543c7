// Package metadata is the on-device key/value store. Values are plain
// strings so any durable backend can hold them.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns ok=false, with no error, when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
