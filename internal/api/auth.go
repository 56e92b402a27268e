package api

import (
	"context"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/core/ports"
	"github.com/storekit/backoffice/internal/transport"
)

// Auth performs the two authentication operations. It carries no retry logic
// of its own; the refresh-and-retry orchestration lives in the transport
// pipeline.
type Auth struct {
	http *transport.Client
}

func NewAuth(c *transport.Client) *Auth {
	return &Auth{http: c}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for a token pair and user profile. An
// isSuccess=false or value-less envelope is a failure even on HTTP 200.
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	req := loginRequest{Email: email, Password: password}
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var result domain.LoginResult
	if err := a.http.Post(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	if result.AccessToken == "" || result.User == nil {
		return nil, &domain.APIError{
			Code:    "Failure",
			Message: "login response is missing credentials",
			Type:    domain.ErrorTypeFailure,
		}
	}
	return &result, nil
}

// RefreshTokens exchanges a refresh token for a new token pair.
func (a *Auth) RefreshTokens(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrNoRefreshToken
	}
	var pair domain.TokenPair
	if err := a.http.Post(ctx, "/auth/refresh-token", refreshRequest{RefreshToken: refreshToken}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

var _ ports.AuthGateway = (*Auth)(nil)
