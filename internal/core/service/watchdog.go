package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storekit/backoffice/internal/core/ports"
)

const defaultWatchInterval = time.Minute

// Watchdog detects silent token expiry when no request happens to trigger
// the pipeline's reactive refresh. It only handles the unrecoverable case:
// an expired access token with no refresh token forces a logout. When a
// refresh token is present it takes no action; the next authenticated
// request recovers through the pipeline.
type Watchdog struct {
	tokens   ports.TokenStore
	session  *Session
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// WatchdogOption configures a Watchdog.
type WatchdogOption func(*Watchdog)

// WithInterval overrides the tick interval (default one minute).
func WithInterval(d time.Duration) WatchdogOption {
	return func(w *Watchdog) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithNow sets the clock function (primarily for testing).
func WithNow(now func() time.Time) WatchdogOption {
	return func(w *Watchdog) { w.now = now }
}

func NewWatchdog(tokens ports.TokenStore, session *Session, log zerolog.Logger, opts ...WatchdogOption) *Watchdog {
	w := &Watchdog{
		tokens:   tokens,
		session:  session,
		interval: defaultWatchInterval,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs one check immediately, then ticks until ctx is cancelled.
func (w *Watchdog) Start(ctx context.Context) {
	w.check()
	go w.run(ctx)
}

func (w *Watchdog) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watchdog) check() {
	expiresAt, ok := w.tokens.ExpiresAt()
	if !ok || w.now().Before(expiresAt) {
		return
	}
	if _, ok := w.tokens.RefreshToken(); ok {
		// Recoverable: the next request refreshes reactively.
		w.log.Debug().Time("expiresAt", expiresAt).Msg("access token expired, refresh token present")
		return
	}
	w.log.Info().Time("expiresAt", expiresAt).Msg("access token expired with no refresh token, logging out")
	w.session.Logout()
}
