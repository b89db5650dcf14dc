package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SINO-Proyect/sino-cli/internal/api"
	"github.com/SINO-Proyect/sino-cli/internal/credstore"
)

// testBackend scripts one handler per route for session flows.
type testBackend struct {
	server *httptest.Server

	verifyStatus int32 // HTTP status returned by /verify
	logoutStatus int32 // HTTP status returned by /logout
	logoutCalls  atomic.Int32
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()

	b := &testBackend{}
	b.verifyStatus = http.StatusOK
	b.logoutStatus = http.StatusOK

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.RouteLogin, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"idToken":"tok","refreshToken":"ref","email":"ada@example.com","emailVerified":false}}`))
	})
	mux.HandleFunc("GET "+api.RouteVerify, func(w http.ResponseWriter, r *http.Request) {
		status := int(atomic.LoadInt32(&b.verifyStatus))
		if status != http.StatusOK {
			http.Error(w, "no", status)
			return
		}
		w.Write([]byte(`{"success":true,"data":{"email":"ada@example.com","emailVerified":true}}`))
	})
	mux.HandleFunc("POST "+api.RouteLogout, func(w http.ResponseWriter, r *http.Request) {
		b.logoutCalls.Add(1)
		status := int(atomic.LoadInt32(&b.logoutStatus))
		if status != http.StatusOK {
			http.Error(w, "no", status)
			return
		}
		w.Write([]byte(`{"success":true,"message":"bye"}`))
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func newTestManager(t *testing.T, backend *testBackend) (*Manager, *credstore.Credentials) {
	t.Helper()

	creds, err := credstore.NewCredentials(credstore.NewMemoryStore())
	require.NoError(t, err)

	client, err := api.New(backend.server.URL)
	require.NoError(t, err)

	manager, err := NewManager(creds, client)
	require.NoError(t, err)
	return manager, creds
}

func seedSession(t *testing.T, creds *credstore.Credentials) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, creds.SetAccessToken(ctx, "tok"))
	require.NoError(t, creds.SetRefreshToken(ctx, "ref"))
	require.NoError(t, creds.SetEmail(ctx, "ada@example.com"))
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	manager, creds := newTestManager(t, newTestBackend(t))

	require.NoError(t, manager.Login(ctx, "ada@example.com", "hunter2"))

	access, err := creds.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", access)

	refresh, err := creds.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ref", refresh)

	email, err := manager.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	authenticated, err := manager.Authenticated(ctx)
	require.NoError(t, err)
	assert.True(t, authenticated)
}

func TestVerifyValidRefreshesCachedIdentity(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	status, err := manager.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, VerifyValid, status)

	verified, err := manager.EmailVerified(ctx)
	require.NoError(t, err)
	assert.True(t, verified, "fresh verification flag cached")
}

func TestVerifyUnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	atomic.StoreInt32(&backend.verifyStatus, http.StatusUnauthorized)
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	status, err := manager.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, VerifyInvalid, status)

	authenticated, err := creds.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)
}

func TestVerifyNotFoundClearsSession(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	atomic.StoreInt32(&backend.verifyStatus, http.StatusNotFound)
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	status, err := manager.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, VerifyInvalid, status)

	authenticated, err := creds.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)
}

func TestVerifyServerErrorKeepsSession(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	atomic.StoreInt32(&backend.verifyStatus, http.StatusInternalServerError)
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	status, err := manager.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, VerifyOffline, status, "a 5xx must not log the user out")

	access, err := creds.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", access, "credentials untouched")
}

func TestVerifyUnreachableBackendKeepsSession(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	backend.server.Close() // simulate no connectivity
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	status, err := manager.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, VerifyOffline, status)

	authenticated, err := creds.Authenticated(ctx)
	require.NoError(t, err)
	assert.True(t, authenticated)
}

func TestLogoutClearsEvenWhenCallSucceeds(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	require.NoError(t, manager.Logout(ctx))

	assert.Equal(t, int32(1), backend.logoutCalls.Load())
	authenticated, err := creds.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)
}

func TestLogoutClearsEvenWhenCallFails(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	atomic.StoreInt32(&backend.logoutStatus, http.StatusInternalServerError)
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	require.NoError(t, manager.Logout(ctx), "logout is best-effort; the call failure is swallowed")

	authenticated, err := creds.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)
}

func TestLogoutClearsEvenWhenBackendUnreachable(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	backend.server.Close()
	manager, creds := newTestManager(t, backend)
	seedSession(t, creds)

	require.NoError(t, manager.Logout(ctx))

	authenticated, err := creds.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)
}

func TestWatchObservesLoadingBeforeTerminalState(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t, newTestBackend(t))

	states, cancel := manager.Watch()
	defer cancel()

	require.NoError(t, manager.Login(ctx, "ada@example.com", "hunter2"))

	first := <-states
	assert.Equal(t, "login", first.Operation)
	assert.Equal(t, PhaseLoading, first.Phase)

	second := <-states
	assert.Equal(t, PhaseSucceeded, second.Phase)
	assert.NoError(t, second.Err)
}

func TestWatchReportsFailure(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	backend.server.Close()
	manager, _ := newTestManager(t, backend)

	states, cancel := manager.Watch()
	defer cancel()

	require.Error(t, manager.Login(ctx, "ada@example.com", "hunter2"))

	first := <-states
	assert.Equal(t, PhaseLoading, first.Phase)

	second := <-states
	assert.Equal(t, PhaseFailed, second.Phase)
	assert.Error(t, second.Err)
}

func TestWatchCancelStopsDelivery(t *testing.T) {
	manager, _ := newTestManager(t, newTestBackend(t))

	states, cancel := manager.Watch()
	cancel()

	_, open := <-states
	assert.False(t, open, "cancel closes the subscription channel")

	// Cancel twice must not panic.
	cancel()
}
