package ports

import (
	"time"

	"github.com/storekit/backoffice/internal/core/domain"
)

// TokenStore is the typed view over the four persisted session slots: access
// token, refresh token, expiry instant, and cached user profile. Reads report
// absence instead of failing; writes are immediately durable.
//
// Writes are grouped by lifecycle event: SetSession on login (all four slots),
// SetTokens on refresh (token slots only), Clear on logout or terminal
// refresh failure (all four together). The backing medium provides no
// cross-slot atomicity; a crash mid-write can leave a partial state.
type TokenStore interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	ExpiresAt() (time.Time, bool)
	User() (*domain.UserProfile, bool)

	SetSession(user *domain.UserProfile, tokens domain.TokenPair)
	SetTokens(tokens domain.TokenPair)
	Clear()
}
