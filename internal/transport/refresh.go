package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/core/ports"
	"github.com/storekit/backoffice/internal/transport/metrics"
)

// RefreshFunc exchanges a refresh token for a new token pair. It must run
// outside the refreshing pipeline itself, otherwise a 401 on the refresh
// call would recurse.
type RefreshFunc func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)

// RefreshRetry recovers from 401 responses: refresh the access token once,
// replay the original request once through the inner chain (which re-attaches
// the new bearer), and hand the replay's outcome to the caller as if it were
// the first attempt. A request is never replayed more than once, so a
// persistent 401 cannot loop.
//
// Refreshes are serialized: concurrent 401s share a single in-flight refresh
// instead of racing to overwrite the store with competing token pairs. A
// request that finds the stored token already rotated while it waited simply
// replays with the new token.
//
// When the refresh itself fails the store is cleared (full logout),
// onSessionExpired fires, and the refresh error propagates to the original
// caller.
func RefreshRetry(tokens ports.TokenStore, refresh RefreshFunc, onSessionExpired func()) Middleware {
	var mu sync.Mutex
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			tokenBefore, _ := tokens.AccessToken()

			resp, err := next.Do(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}

			if err := renewTokens(req.Context(), &mu, tokens, refresh, tokenBefore); err != nil {
				if errors.Is(err, domain.ErrNoRefreshToken) {
					// Cannot recover: the original 401 stands.
					return resp, nil
				}
				drain(resp)
				tokens.Clear()
				if onSessionExpired != nil {
					onSessionExpired()
				}
				return nil, err
			}

			drain(resp)
			retry, err := cloneForReplay(req)
			if err != nil {
				return nil, err
			}
			metrics.RetriesTotal.Inc()
			return next.Do(retry)
		})
	}
}

// renewTokens ensures the store holds a fresh token pair. Exactly one caller
// refreshes; the rest either coalesce onto the rotation that happened while
// they waited for the lock, or fail with the refresh error.
func renewTokens(ctx context.Context, mu *sync.Mutex, tokens ports.TokenStore, refresh RefreshFunc, tokenBefore string) error {
	mu.Lock()
	defer mu.Unlock()

	if current, ok := tokens.AccessToken(); ok && current != tokenBefore {
		metrics.TokenRefreshTotal.WithLabelValues("coalesced").Inc()
		return nil
	}

	refreshToken, ok := tokens.RefreshToken()
	if !ok {
		return domain.ErrNoRefreshToken
	}

	pair, err := refresh(ctx, refreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("token refresh: %w", err)
	}
	tokens.SetTokens(*pair)
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	return nil
}

// cloneForReplay duplicates a request whose body may already be consumed,
// rewinding via GetBody. Requests built by Client always have GetBody set.
func cloneForReplay(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("transport: request body cannot be replayed")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("transport: rewind request body: %w", err)
	}
	clone.Body = body
	return clone, nil
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
