package authtransport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/SINO-Proyect/sino-cli/internal/credstore"
)

// TokenPair carries the credentials minted by a refresh call. An empty field
// means the backend did not rotate that token and the stored value is kept.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Refresher exchanges a refresh token for a new token pair. Implementations
// must perform a dedicated, non-intercepted call to the authentication
// backend: the pipeline invokes Refresh from inside its critical section.
//
// Any returned error (rejection, malformed payload, transport failure) is
// treated as an unrecoverable refresh failure and clears the stored session.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// RoutePredicate reports whether a request targets a public route.
type RoutePredicate func(*http.Request) bool

// PublicRoutes builds a RoutePredicate matching any request whose URL path
// contains one of the given fragments.
func PublicRoutes(fragments ...string) RoutePredicate {
	return func(req *http.Request) bool {
		for _, fragment := range fragments {
			if strings.Contains(req.URL.Path, fragment) {
				return true
			}
		}
		return false
	}
}

// Option configures a Transport.
type Option func(*Transport)

// WithBase sets the underlying transport forwarded to.
// If not provided, http.DefaultTransport is used.
func WithBase(base http.RoundTripper) Option {
	return func(t *Transport) {
		t.base = base
	}
}

// WithPublicRoutes sets the predicate for routes exempt from token
// attachment and 401 handling.
func WithPublicRoutes(isPublic RoutePredicate) Option {
	return func(t *Transport) {
		t.isPublic = isPublic
	}
}

// Transport is an http.RoundTripper that attaches the stored access token to
// outgoing requests and transparently refreshes it on a 401 response.
type Transport struct {
	base      http.RoundTripper
	creds     *credstore.Credentials
	refresher Refresher
	isPublic  RoutePredicate

	// Guards the check-then-refresh section. Writes to the credential store
	// only ever happen while this is held.
	refreshMu sync.Mutex
}

// Compile-time check that Transport implements http.RoundTripper.
var _ http.RoundTripper = (*Transport)(nil)

// New creates a Transport over the given credential record and refresher.
func New(creds *credstore.Credentials, refresher Refresher, opts ...Option) (*Transport, error) {
	if creds == nil {
		return nil, fmt.Errorf("missing credentials")
	}
	if refresher == nil {
		return nil, fmt.Errorf("missing refresher")
	}

	t := &Transport{
		base:      http.DefaultTransport,
		creds:     creds,
		refresher: refresher,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// RoundTrip implements http.RoundTripper.
//
// Non-401 responses, including non-auth errors, are returned unchanged:
// retry and backoff for those belong to the caller. A 401 triggers at most
// one refresh and at most one retry; if the refresh is impossible or fails,
// the caller receives the original 401.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.isPublic != nil && t.isPublic(req) {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()

	token, err := t.creds.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading access token: %w", err)
	}

	resp, err := t.send(req, token, false)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// A request whose body cannot be replayed cannot be retried; surface the
	// 401 as-is.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	retryResp, retryErr := t.handleUnauthorized(req, token)
	if retryErr != nil {
		return nil, retryErr
	}
	if retryResp == nil {
		// Refresh impossible or failed: the original 401 goes to the caller.
		return resp, nil
	}

	discard(resp)
	return retryResp, nil
}

// handleUnauthorized runs the refresh protocol. It returns (nil, nil) when
// the original 401 should be surfaced, and the retry response otherwise.
func (t *Transport) handleUnauthorized(req *http.Request, usedToken string) (*http.Response, error) {
	t.refreshMu.Lock()
	defer t.refreshMu.Unlock()

	ctx := req.Context()

	// The token must be re-read after acquiring the lock: a concurrent
	// caller may have completed a refresh while this one was blocked.
	current, err := t.creds.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("re-reading access token: %w", err)
	}
	if current != usedToken && current != "" {
		// Someone else refreshed. Retry once with their token; a second 401
		// here goes back to the caller untouched.
		return t.send(req, current, true)
	}

	refreshToken, err := t.creds.RefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading refresh token: %w", err)
	}
	if refreshToken == "" {
		// Cannot refresh without a refresh token; store stays untouched.
		return nil, nil
	}

	pair, err := t.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		// Refresh rejection and refresh transport failure are equivalent:
		// the session is gone.
		_ = t.creds.Clear(ctx)
		return nil, nil
	}

	// Two independent writes: a crash in between leaves a fresh access token
	// with a stale refresh token, which the next failed refresh self-heals.
	if pair.AccessToken != "" {
		if err := t.creds.SetAccessToken(ctx, pair.AccessToken); err != nil {
			return nil, fmt.Errorf("persisting access token: %w", err)
		}
	}
	if pair.RefreshToken != "" {
		if err := t.creds.SetRefreshToken(ctx, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("persisting refresh token: %w", err)
		}
	}

	retryToken := pair.AccessToken
	if retryToken == "" {
		retryToken = usedToken
	}
	return t.send(req, retryToken, true)
}

// send forwards a clone of req with the bearer token attached. When replay
// is set the body is rebuilt via GetBody.
func (t *Transport) send(req *http.Request, token string, replay bool) (*http.Response, error) {
	out := req.Clone(req.Context())

	if replay && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replaying request body: %w", err)
		}
		out.Body = body
	}

	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		// Forward without a credential; the backend is expected to reject it.
		out.Header.Del("Authorization")
	}

	return t.base.RoundTrip(out)
}

// discard drains and closes a response that is being replaced, keeping the
// underlying connection reusable.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
