// Package metadata is a small key/value table in the local session store.
// The CLI keeps the server URL, the username and the bearer token here.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
