package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)
	return client
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)

	_, err = New("/relative")
	assert.Error(t, err)
}

func TestLoginDecodesSessionData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, RouteLogin, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"success":true,"message":"ok","data":{"idToken":"tok","refreshToken":"ref","email":"ada@example.com","emailVerified":true}}`))
	})

	data, err := client.Login(context.Background(), "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok", data.IDToken)
	assert.Equal(t, "ref", data.RefreshToken)
	assert.Equal(t, "ada@example.com", data.Email)
	assert.True(t, data.EmailVerified)
}

func TestEnvelopeFailureBecomesServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"wrong password"}`))
	})

	_, err := client.Login(context.Background(), "ada@example.com", "nope")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "wrong password", serverErr.Message)
	assert.Equal(t, http.StatusOK, serverErr.Status)
}

func TestHTTPFailureCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"name is required"}`))
	})

	_, err := client.Register(context.Background(), "", "ada@example.com", "hunter2")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadRequest, serverErr.Status)
	assert.Equal(t, "name is required", serverErr.Message)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestUnauthorizedBecomesAuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := client.Verify(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestUnreachableServerBecomesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	client, err := New(server.URL)
	require.NoError(t, err)

	_, err = client.Verify(context.Background())
	assert.True(t, IsTransport(err), "connection refused maps to TransportError")
	assert.Zero(t, StatusOf(err))
}

func TestSuccessWithoutExpectedDataIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	_, err := client.Verify(context.Background())
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Contains(t, serverErr.Message, "data missing")
}

func TestOperationsWithoutPayloadIgnoreData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, RouteLogout, r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"bye"}`))
	})

	assert.NoError(t, client.Logout(context.Background()))
}

func TestListStudyPlans(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/study-plans", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"plans":[{"id":"p1","name":"Systems Engineering"},{"id":"p2","name":"Medicine"}]}}`))
	})

	plans, err := client.ListStudyPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Systems Engineering", plans[0].Name)
}

func TestListEventsWindow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("from"))
		assert.NotEmpty(t, r.URL.Query().Get("to"))
		w.Write([]byte(`{"success":true,"data":{"events":[]}}`))
	})

	now := time.Now()
	events, err := client.ListEvents(context.Background(), now, now.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, events)
}
