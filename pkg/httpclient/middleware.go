// Package httpclient provides composable RoundTripper middleware for outgoing
// HTTP requests: bearer-token injection, request IDs, and request logging.
package httpclient

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware wraps an http.RoundTripper with additional behaviour.
type Middleware func(http.RoundTripper) http.RoundTripper

// roundTripperFunc adapts a function to the http.RoundTripper interface.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Wrap applies middlewares to base so that the first middleware listed is the
// outermost, i.e. it sees the request first.
func Wrap(base http.RoundTripper, mw ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mw) - 1; i >= 0; i-- {
		base = mw[i](base)
	}
	return base
}

// TokenSource yields the current bearer token. An empty string means there is
// no credential to attach.
type TokenSource interface {
	Token() string
}

// Bearer returns a middleware that attaches "Authorization: Bearer <token>" to
// every outgoing request when the source holds a token. Requests without a
// stored token go out bare and rely on the backend to reject them when
// authentication is required.
func Bearer(tokens TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if tok := tokens.Token(); tok != "" && r.Header.Get("Authorization") == "" {
				// Clone: RoundTrippers must not mutate the caller's request.
				r = r.Clone(r.Context())
				r.Header.Set("Authorization", "Bearer "+tok)
			}
			return next.RoundTrip(r)
		})
	}
}

// RequestID returns a middleware that stamps every outgoing request with a
// unique X-Request-ID header, unless the caller already set one.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("X-Request-ID") == "" {
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-ID", uuid.New().String())
			}
			return next.RoundTrip(r)
		})
	}
}

// LogRequests returns a middleware that logs each request with its method,
// URL, status and duration using the zctx logger carried in the request
// context.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			lg := zctx.From(r.Context())
			start := time.Now()

			resp, err := next.RoundTrip(r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				lg.Error("Request failed", append(fields, zap.Error(err))...)
				return nil, err
			}
			lg.Debug("Request completed", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}
