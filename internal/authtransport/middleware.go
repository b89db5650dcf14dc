package authtransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader carries the client-generated correlation ID.
const requestIDHeader = "X-Request-Id"

// Middleware wraps an http.RoundTripper with additional behavior.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain applies middlewares to a RoundTripper in the order they appear.
// The first middleware in the slice is the outermost (executes first).
func Chain(rt http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	for i := len(middlewares) - 1; i >= 0; i-- {
		rt = middlewares[i](rt)
	}
	return rt
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// RequestID stamps outgoing requests with a generated X-Request-Id header,
// keeping any ID the caller already set.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(requestIDHeader) != "" {
				return next.RoundTrip(req)
			}
			out := req.Clone(req.Context())
			out.Header.Set(requestIDHeader, uuid.NewString())
			return next.RoundTrip(out)
		})
	}
}

// Logging logs outgoing calls with method, path, status, and duration at
// debug level. Headers and bodies are never logged to avoid leaking
// credentials.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			duration := time.Since(start)

			if err != nil {
				logger.DebugContext(req.Context(), "request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"duration", duration,
					"error", err,
				)
				return nil, err
			}

			logger.DebugContext(req.Context(), "request completed",
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode,
				"duration", duration,
			)
			return resp, nil
		})
	}
}
