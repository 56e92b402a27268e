package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/storekit/backoffice/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "InvalidPayload", "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "MissingCredentials", "email and password are required")
	}

	s.mu.Lock()
	acct, found := s.accounts[req.Email]
	s.mu.Unlock()
	if !found || acct.password != req.Password {
		return fail(c, http.StatusUnauthorized, domain.ErrorTypeFailure, "InvalidCredentials", "invalid email or password")
	}

	pair, err := s.issueTokens(acct.profile)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, domain.LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		User:         &acct.profile,
	})
}

func (s *Server) handleRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "MissingRefreshToken", "refreshToken is required")
	}

	s.mu.Lock()
	email, found := s.refreshTokens[req.RefreshToken]
	if found {
		// Single use: consume on presentation.
		delete(s.refreshTokens, req.RefreshToken)
	}
	acct, haveAcct := s.accounts[email]
	s.mu.Unlock()

	if !found || !haveAcct {
		return fail(c, http.StatusUnauthorized, domain.ErrorTypeFailure, "InvalidRefreshToken", "refresh token is invalid or already used")
	}

	pair, err := s.issueTokens(acct.profile)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, pair)
}

func (s *Server) issueTokens(profile domain.UserProfile) (domain.TokenPair, error) {
	expiresAt := s.now().Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":  profile.Email,
		"role": int(profile.Role),
		"exp":  expiresAt.Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh := newRefreshToken()
	s.mu.Lock()
	s.refreshTokens[refresh] = profile.Email
	s.mu.Unlock()

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt.UTC().Truncate(time.Second),
	}, nil
}

// requireAuth validates the bearer token and stashes the caller's identity
// in the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return fail(c, http.StatusUnauthorized, domain.ErrorTypeFailure, "Unauthorized", "missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fail(c, http.StatusUnauthorized, domain.ErrorTypeFailure, "Unauthorized", "invalid authorization header")
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			return fail(c, http.StatusUnauthorized, domain.ErrorTypeFailure, "Unauthorized", "invalid or expired token")
		}

		c.Set("email", claims["sub"])
		c.Set("role", claims["role"])
		return next(c)
	}
}

// requireAdmin gates mutating routes to the admin role.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get("role").(float64)
		if domain.Role(role) != domain.RoleAdmin {
			return fail(c, http.StatusForbidden, domain.ErrorTypeFailure, "Forbidden", "admin role required")
		}
		return next(c)
	}
}
