package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SINO-Proyect/sino-cli/internal/authtransport"
)

// RefresherOption configures a TokenRefresher.
type RefresherOption func(*TokenRefresher)

// WithRefresherHTTPClient sets the HTTP client used for refresh calls. The
// client must not carry the authenticated request pipeline.
func WithRefresherHTTPClient(httpClient *http.Client) RefresherOption {
	return func(r *TokenRefresher) {
		r.httpClient = httpClient
	}
}

// TokenRefresher performs the dedicated refresh call against the
// authentication backend. It deliberately uses a bare HTTP client: it is
// invoked from inside the request pipeline's critical section and must never
// be intercepted itself.
type TokenRefresher struct {
	endpoint   string
	httpClient *http.Client
}

// Compile-time check that TokenRefresher implements authtransport.Refresher.
var _ authtransport.Refresher = (*TokenRefresher)(nil)

// NewTokenRefresher creates a TokenRefresher for the given API base URL.
func NewTokenRefresher(baseURL string, opts ...RefresherOption) (*TokenRefresher, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	r := &TokenRefresher{
		endpoint:   strings.TrimRight(baseURL, "/") + RouteRefreshToken,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshData struct {
	IDToken      string `json:"idToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Refresh exchanges refreshToken for a new token pair.
//
// Only a 2xx response with success=true and a data object counts as success;
// anything else (rejection, malformed payload, transport failure) is an
// error, which the pipeline escalates to a cleared session. An absent
// idToken or refreshToken in the payload leaves that field of the pair empty,
// meaning "unchanged".
func (r *TokenRefresher) Refresh(ctx context.Context, refreshToken string) (authtransport.TokenPair, error) {
	encoded, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return authtransport.TokenPair{}, fmt.Errorf("encoding refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return authtransport.TokenPair{}, fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return authtransport.TokenPair{}, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return authtransport.TokenPair{}, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return authtransport.TokenPair{}, &ServerError{Status: resp.StatusCode, Message: "refresh rejected"}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return authtransport.TokenPair{}, &ServerError{Status: resp.StatusCode, Message: "malformed refresh response"}
	}
	if !env.Success || env.Data == nil {
		return authtransport.TokenPair{}, &ServerError{Status: resp.StatusCode, Message: env.Message}
	}

	var data refreshData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return authtransport.TokenPair{}, &ServerError{Status: resp.StatusCode, Message: "malformed refresh data"}
	}

	return authtransport.TokenPair{
		AccessToken:  data.IDToken,
		RefreshToken: data.RefreshToken,
	}, nil
}
