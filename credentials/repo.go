// Package credentials defines the durable slot the refresh token lives in.
// The refresh token is the only credential that survives a restart; access
// tokens stay in memory. The slot is read once at startup and written at
// login, so implementations only need coarse-grained safety.
package credentials

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when the slot is empty.
var ErrNotFound = errors.New("refresh token not found")

// Repo is the persistent refresh-token carrier.
type Repo interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, refreshToken string) error
	Clear(ctx context.Context) error
}
