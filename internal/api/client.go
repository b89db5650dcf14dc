// Package api is the typed client for the SINO academic-planning backend.
//
// Every response uses a common envelope:
//
//	{ "success": bool, "message": string, "data": { ... } }
//
// Failures are mapped onto three error kinds: TransportError (server
// unreachable), AuthError (authorization rejected) and ServerError
// (everything else, with the server message when available). The client does
// not interpret business-logic failures beyond that mapping.
//
// Bearer-token attachment and refresh-on-401 are not handled here; the
// injected http.Client is expected to carry the authtransport chain.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API routes, relative to the base URL.
const (
	RouteLogin           = "/auth/login"
	RouteRegister        = "/auth/register"
	RouteRefreshToken    = "/auth/refresh-token"
	RouteRecoverPassword = "/auth/recover-password"
	RouteVerify          = "/verify"
	RouteLogout          = "/logout"
)

// PublicRoutes lists the routes exempt from bearer-token attachment and
// 401-interception in the request pipeline.
func PublicRoutes() []string {
	return []string{RouteLogin, RouteRegister, RouteRefreshToken, RouteRecoverPassword}
}

// envelope is the response wrapper common to every backend endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for API calls. This is where the
// authenticated request pipeline is injected.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client talks to the SINO backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host required", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do performs one API call and decodes the envelope. When out is non-nil the
// envelope's data field is unmarshaled into it; a successful envelope without
// data is then an error.
func (c *Client) do(ctx context.Context, method, route string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	// The envelope is best-effort on failure statuses: error bodies are not
	// guaranteed to be well-formed JSON.
	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		message := ""
		if decodeErr == nil {
			message = env.Message
		}
		return &ServerError{Status: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return &ServerError{Status: resp.StatusCode, Message: "malformed response body"}
	}
	if !env.Success {
		return &ServerError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if env.Data == nil {
			return &ServerError{Status: resp.StatusCode, Message: "response data missing"}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &ServerError{Status: resp.StatusCode, Message: "malformed response data"}
		}
	}

	return nil
}
