package credstore

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvStore provides read-only access to credentials stored in environment
// variables. Suitable for pre-provisioned access tokens but not for session
// management (login and token refresh require writable storage).
type EnvStore struct {
	prefix string
}

// Compile-time check to ensure EnvStore implements Store
var _ Store = (*EnvStore)(nil)

// NewEnvStore creates an EnvStore mapping each record field to an environment
// variable named prefix + upper-cased field (e.g. SINO_CREDENTIAL_ACCESS_TOKEN).
func NewEnvStore(prefix string) (*EnvStore, error) {
	if prefix == "" {
		return nil, fmt.Errorf("environment variable prefix cannot be empty")
	}

	return &EnvStore{
		prefix: prefix,
	}, nil
}

func (e *EnvStore) envKey(key string) string {
	return e.prefix + strings.ToUpper(key)
}

// Get returns the field value from the environment. Returns ErrNotFound if
// the variable is unset or empty.
func (e *EnvStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	value, exists := os.LookupEnv(e.envKey(key))
	if !exists || value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

// Set is not supported for environment variables (they are read-only).
func (e *EnvStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return ErrReadOnly
}

// Delete is not supported for environment variables (they are read-only).
func (e *EnvStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return ErrReadOnly
}
