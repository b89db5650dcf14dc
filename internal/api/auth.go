package api

import (
	"context"
	"net/http"
)

// SessionData is the payload returned by the session endpoints (login,
// register, verify). idToken is what the backend calls the access token.
type SessionData struct {
	IDToken       string `json:"idToken,omitempty"`
	RefreshToken  string `json:"refreshToken,omitempty"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type recoverRequest struct {
	Email string `json:"email"`
}

// Login authenticates with email and password. Public route.
func (c *Client) Login(ctx context.Context, email, password string) (SessionData, error) {
	var data SessionData
	err := c.do(ctx, http.MethodPost, RouteLogin, loginRequest{Email: email, Password: password}, &data)
	return data, err
}

// Register creates an account and returns its initial session. Public route.
func (c *Client) Register(ctx context.Context, name, email, password string) (SessionData, error) {
	var data SessionData
	err := c.do(ctx, http.MethodPost, RouteRegister, registerRequest{Name: name, Email: email, Password: password}, &data)
	return data, err
}

// Verify checks the current session against the backend and returns fresh
// email and verification values. The bearer token is attached by the request
// pipeline.
func (c *Client) Verify(ctx context.Context) (SessionData, error) {
	var data SessionData
	err := c.do(ctx, http.MethodGet, RouteVerify, nil, &data)
	return data, err
}

// Logout invalidates the session server-side. Callers treat this as
// best-effort and clear local credentials regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, RouteLogout, nil, nil)
}

// RecoverPassword starts the password-recovery flow for email. Public route.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, RouteRecoverPassword, recoverRequest{Email: email}, nil)
}
