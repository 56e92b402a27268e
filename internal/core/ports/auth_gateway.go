package ports

import (
	"context"

	"github.com/storekit/backoffice/internal/core/domain"
)

// AuthGateway performs the two authentication network operations. It carries
// no retry logic of its own; retry orchestration lives in the HTTP pipeline.
type AuthGateway interface {
	// Login exchanges credentials for a token pair and user profile.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	// RefreshTokens exchanges a refresh token for a new token pair. The
	// presented refresh token is consumed whether or not the call succeeds.
	RefreshTokens(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}
