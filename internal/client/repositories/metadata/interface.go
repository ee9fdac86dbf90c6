// Package metadata is the client's durable key/value side channel. The
// session keeps its bearer tokens here so a restarted client can resume.
package metadata

import (
	"context"
)

// Keys used by the session for persisted tokens.
const (
	KeyAuthToken    = "auth_token"
	KeyRefreshToken = "refresh_token"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key. List and Clear back the `state` command.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
