package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SINO-Proyect/sino-cli/internal/api"
	"github.com/SINO-Proyect/sino-cli/internal/authtransport"
	"github.com/SINO-Proyect/sino-cli/internal/credstore"
	"github.com/SINO-Proyect/sino-cli/internal/session"
)

// App is the composition root: one credential record, one authenticated
// request pipeline, and one API client per process, shared by every command.
// Nothing here is ambient state; callers receive the instances they need.
type App struct {
	cfg *Config

	Credentials *credstore.Credentials
	Client      *api.Client
	Session     *session.Manager
}

// New wires the application from configuration. No I/O is performed; the
// credential store is first touched by the first API call.
func New(cfg *Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := cfg.Credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to create credential store: %w", err)
	}

	creds, err := credstore.NewCredentials(store)
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials: %w", err)
	}

	// The refresher gets its own bare client: refresh calls run inside the
	// pipeline's critical section and must not be intercepted again.
	refresher, err := api.NewTokenRefresher(cfg.API.BaseURL,
		api.WithRefresherHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token refresher: %w", err)
	}

	pipeline, err := authtransport.New(creds, refresher,
		authtransport.WithPublicRoutes(authtransport.PublicRoutes(api.PublicRoutes()...)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request pipeline: %w", err)
	}

	transport := authtransport.Chain(pipeline,
		authtransport.RequestID(),
		authtransport.Logging(slog.Default()),
	)

	client, err := api.New(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Transport: transport, Timeout: cfg.API.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	sess, err := session.NewManager(creds, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	return &App{
		cfg:         cfg,
		Credentials: creds,
		Client:      client,
		Session:     sess,
	}, nil
}

// RequireWritableCredentials rejects commands that mutate the session when
// the configured credential backend is read-only.
func (a *App) RequireWritableCredentials() error {
	if !a.cfg.Credentials.Writable() {
		return fmt.Errorf("session management requires writable credential storage, %s is read-only", a.cfg.Credentials.Storage)
	}
	return nil
}
