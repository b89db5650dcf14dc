package credstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Credentials exposes the typed credential record on top of a Store.
//
// Absence of the access token means "unauthenticated". Each setter persists
// its field immediately and independently; a crash between two setter calls
// can leave the record partially updated, which callers must tolerate (a
// stale refresh token is rejected by the backend on the next refresh, which
// then clears the record).
type Credentials struct {
	store Store
}

// NewCredentials wraps store with the typed record accessors.
func NewCredentials(store Store) (*Credentials, error) {
	if store == nil {
		return nil, fmt.Errorf("missing credential store")
	}
	return &Credentials{store: store}, nil
}

// get maps ErrNotFound to the empty string; every other error is real.
func (c *Credentials) get(ctx context.Context, key string) (string, error) {
	value, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

// AccessToken returns the stored access token, or "" when unauthenticated.
func (c *Credentials) AccessToken(ctx context.Context) (string, error) {
	return c.get(ctx, KeyAccessToken)
}

// SetAccessToken persists the access token.
func (c *Credentials) SetAccessToken(ctx context.Context, token string) error {
	return c.store.Set(ctx, KeyAccessToken, token)
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (c *Credentials) RefreshToken(ctx context.Context) (string, error) {
	return c.get(ctx, KeyRefreshToken)
}

// SetRefreshToken persists the refresh token.
func (c *Credentials) SetRefreshToken(ctx context.Context, token string) error {
	return c.store.Set(ctx, KeyRefreshToken, token)
}

// Email returns the cached account email, or "" when absent. The email is an
// identity hint for display purposes, never used for authorization.
func (c *Credentials) Email(ctx context.Context) (string, error) {
	return c.get(ctx, KeyEmail)
}

// SetEmail persists the cached account email.
func (c *Credentials) SetEmail(ctx context.Context, email string) error {
	return c.store.Set(ctx, KeyEmail, email)
}

// EmailVerified returns the cached verification flag. An absent flag reads
// as false.
func (c *Credentials) EmailVerified(ctx context.Context) (bool, error) {
	value, err := c.get(ctx, KeyEmailVerified)
	if err != nil || value == "" {
		return false, err
	}

	verified, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", KeyEmailVerified, err)
	}
	return verified, nil
}

// SetEmailVerified persists the cached verification flag.
func (c *Credentials) SetEmailVerified(ctx context.Context, verified bool) error {
	return c.store.Set(ctx, KeyEmailVerified, strconv.FormatBool(verified))
}

// Authenticated reports whether an access token is present.
func (c *Credentials) Authenticated(ctx context.Context) (bool, error) {
	token, err := c.AccessToken(ctx)
	return token != "", err
}

// Clear erases the entire credential record. All fields become absent; the
// session appears logged-out afterwards.
func (c *Credentials) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range recordKeys {
		if err := c.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("clearing %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
