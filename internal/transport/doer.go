package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storekit/backoffice/internal/core/ports"
	"github.com/storekit/backoffice/internal/transport/metrics"
)

// Doer executes a single HTTP request. *http.Client satisfies it, and every
// pipeline stage both consumes and implements it, so the chain is independent
// of the concrete transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Middleware decorates a Doer. Middlewares must not mutate the caller's
// request; they clone before modifying.
type Middleware func(Doer) Doer

// Chain wraps base with mws. The first middleware is outermost: it sees the
// request first and the response last.
func Chain(base Doer, mws ...Middleware) Doer {
	d := base
	for i := len(mws) - 1; i >= 0; i-- {
		d = mws[i](d)
	}
	return d
}

// Bearer attaches the stored access token as a bearer credential. Requests
// without a stored token pass through untouched.
func Bearer(tokens ports.TokenStore) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if token, ok := tokens.AccessToken(); ok {
				req = req.Clone(req.Context())
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return next.Do(req)
		})
	}
}

// RequestID stamps an X-Request-ID header for log correlation, keeping any
// ID the caller set themselves.
func RequestID() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				req = req.Clone(req.Context())
				req.Header.Set("X-Request-ID", uuid.NewString())
			}
			return next.Do(req)
		})
	}
}

// Logging emits a debug line per round trip and an error line on transport
// failure. Diagnostic only, not a contract.
func Logging(log zerolog.Logger) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)
			evt := log.Debug()
			if err != nil {
				evt = log.Error().Err(err)
			}
			evt = evt.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Dur("duration", time.Since(start))
			if resp != nil {
				evt = evt.Int("status", resp.StatusCode)
			}
			evt.Msg("api request")
			return resp, err
		})
	}
}

// Metrics records request counts and durations.
func Metrics() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)
			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			metrics.RequestsTotal.WithLabelValues(req.Method, status).Inc()
			metrics.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
			return resp, err
		})
	}
}
