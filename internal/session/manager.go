// Package session owns the credential lifecycle: login and registration
// populate the stored record, verification revalidates it against the
// backend, logout tears it down. Token refresh itself lives in the request
// pipeline; this package only ever sees its outcome (a populated or cleared
// store).
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SINO-Proyect/sino-cli/internal/api"
	"github.com/SINO-Proyect/sino-cli/internal/credstore"
)

// VerifyStatus is the caller-facing outcome of a session verification.
type VerifyStatus int

const (
	// VerifyValid: the backend confirmed the session; cached identity fields
	// were refreshed.
	VerifyValid VerifyStatus = iota
	// VerifyOffline: the backend could not confirm nor deny (5xx, transport
	// failure); the session is assumed still valid and credentials are kept
	// so the app stays usable offline.
	VerifyOffline
	// VerifyInvalid: the backend rejected the session (401 or 404); the
	// credential record was cleared.
	VerifyInvalid
)

// Manager drives the session lifecycle over the credential record.
type Manager struct {
	creds   *credstore.Credentials
	client  *api.Client
	tracker *tracker
}

// NewManager creates a Manager over the given record and API client.
func NewManager(creds *credstore.Credentials, client *api.Client) (*Manager, error) {
	if creds == nil {
		return nil, fmt.Errorf("missing credentials")
	}
	if client == nil {
		return nil, fmt.Errorf("missing API client")
	}

	return &Manager{
		creds:   creds,
		client:  client,
		tracker: newTracker(),
	}, nil
}

// Watch subscribes to operation states. Subscribers that keep draining the
// channel observe Loading before the terminal state of each operation. The
// cancel function must be called when done.
func (m *Manager) Watch() (<-chan State, func()) {
	return m.tracker.subscribe()
}

// persistSession writes a session payload to the credential record, field by
// field. Tokens are stored first so an interruption leaves at worst a stale
// identity hint, never a usable identity without tokens.
func (m *Manager) persistSession(ctx context.Context, data api.SessionData) error {
	if data.IDToken != "" {
		if err := m.creds.SetAccessToken(ctx, data.IDToken); err != nil {
			return fmt.Errorf("persisting access token: %w", err)
		}
	}
	if data.RefreshToken != "" {
		if err := m.creds.SetRefreshToken(ctx, data.RefreshToken); err != nil {
			return fmt.Errorf("persisting refresh token: %w", err)
		}
	}
	if data.Email != "" {
		if err := m.creds.SetEmail(ctx, data.Email); err != nil {
			return fmt.Errorf("persisting email: %w", err)
		}
	}
	if err := m.creds.SetEmailVerified(ctx, data.EmailVerified); err != nil {
		return fmt.Errorf("persisting verification flag: %w", err)
	}
	return nil
}

// Login authenticates and persists the resulting session.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.tracker.run("login", func() error {
		data, err := m.client.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if data.Email == "" {
			data.Email = email
		}
		return m.persistSession(ctx, data)
	})
}

// Register creates an account and persists its initial session.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	return m.tracker.run("register", func() error {
		data, err := m.client.Register(ctx, name, email, password)
		if err != nil {
			return err
		}
		if data.Email == "" {
			data.Email = email
		}
		return m.persistSession(ctx, data)
	})
}

// Verify revalidates the stored session against the backend.
//
// A 401 or 404 means the session is gone: the record is cleared and
// VerifyInvalid returned. Any other failure (5xx, transport) keeps the
// record untouched and returns VerifyOffline; losing connectivity must not
// log the user out. The returned error is only ever a storage failure.
func (m *Manager) Verify(ctx context.Context) (VerifyStatus, error) {
	status := VerifyOffline

	err := m.tracker.run("verify", func() error {
		data, err := m.client.Verify(ctx)
		if err == nil {
			status = VerifyValid
			if data.Email != "" {
				if err := m.creds.SetEmail(ctx, data.Email); err != nil {
					return fmt.Errorf("caching email: %w", err)
				}
			}
			if err := m.creds.SetEmailVerified(ctx, data.EmailVerified); err != nil {
				return fmt.Errorf("caching verification flag: %w", err)
			}
			return nil
		}

		switch api.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusNotFound:
			status = VerifyInvalid
			if err := m.creds.Clear(ctx); err != nil {
				return fmt.Errorf("clearing credentials: %w", err)
			}
			return nil
		default:
			status = VerifyOffline
			slog.DebugContext(ctx, "session verification inconclusive", "error", err)
			return nil
		}
	})

	return status, err
}

// Logout invalidates the session. The backend call is best-effort: its
// failure is logged and ignored, and the credential record is cleared
// unconditionally.
func (m *Manager) Logout(ctx context.Context) error {
	return m.tracker.run("logout", func() error {
		if err := m.client.Logout(ctx); err != nil {
			slog.WarnContext(ctx, "logout call failed, clearing local session anyway", "error", err)
		}
		return m.creds.Clear(ctx)
	})
}

// Authenticated reports whether an access token is stored.
func (m *Manager) Authenticated(ctx context.Context) (bool, error) {
	return m.creds.Authenticated(ctx)
}

// Email returns the cached account email, or "" when absent.
func (m *Manager) Email(ctx context.Context) (string, error) {
	return m.creds.Email(ctx)
}

// EmailVerified returns the cached verification flag.
func (m *Manager) EmailVerified(ctx context.Context) (bool, error) {
	return m.creds.EmailVerified(ctx)
}
