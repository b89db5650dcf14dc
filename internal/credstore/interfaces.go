package credstore

import (
	"context"
	"errors"
)

// Credential record field keys.
const (
	KeyAccessToken   = "access_token"
	KeyRefreshToken  = "refresh_token"
	KeyEmail         = "email"
	KeyEmailVerified = "email_verified"
)

// recordKeys lists every field of the credential record, in Clear order.
var recordKeys = []string{KeyAccessToken, KeyRefreshToken, KeyEmail, KeyEmailVerified}

// ErrNotFound is returned by Get when a field has never been set
// (or has been deleted).
var ErrNotFound = errors.New("credential field not found")

// ErrReadOnly is returned by Set and Delete on read-only backends.
var ErrReadOnly = errors.New("credential storage is read-only")

// Store reads and writes individual credential record fields to persistent
// storage. Each Set persists the field synchronously and independently;
// there is no multi-field transaction.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the stored value for key. Returns ErrNotFound if the key
	// has never been set.
	Get(ctx context.Context, key string) (string, error)

	// Set persists value under key, overwriting any existing value.
	// Returns ErrReadOnly on read-only backends.
	Set(ctx context.Context, key, value string) error

	// Delete removes key from storage. Deleting an absent key is not an
	// error. Returns ErrReadOnly on read-only backends.
	Delete(ctx context.Context, key string) error
}
