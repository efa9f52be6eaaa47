// Package credentials stores the durable credential slots of the client:
// the access token that survives restarts, and the account email it belongs
// to. It is a small key/value table in the local SQLite store.
package credentials

import (
	"context"
)

// Well-known slot keys.
const (
	KeyAccessToken  = "access_token"
	KeyAccountEmail = "account_email"
)

type Repository interface {
	// Get returns the value for key, or common.ErrorNotFound when absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
