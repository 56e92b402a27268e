package domain

import "time"

// TokenPair is the credential set minted by the server on login and refresh.
// Tokens are opaque to the client; ExpiresAt is the absolute expiry instant
// of AccessToken as communicated at issuance.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	User         *UserProfile `json:"user"`
}

// Tokens returns the credential portion of the login result.
func (r *LoginResult) Tokens() TokenPair {
	return TokenPair{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.ExpiresAt,
	}
}

// SessionState is an immutable snapshot of the authentication state.
// A zero ExpiresAt or empty token means the field is absent.
type SessionState struct {
	User          *UserProfile
	AccessToken   string
	RefreshToken  string
	ExpiresAt     time.Time
	Authenticated bool
}

// ComputeAuthenticated derives the Authenticated flag: true iff both an
// access token and a user profile are present. SessionState.Authenticated
// must never be set in a way that disagrees with this.
func (s SessionState) ComputeAuthenticated() bool {
	return s.AccessToken != "" && s.User != nil
}
