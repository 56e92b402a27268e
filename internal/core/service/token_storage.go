package service

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/core/ports"
)

// Slot keys inside the key-value store. The expiry is stored as RFC 3339 and
// the user profile as JSON; tokens are stored verbatim.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyExpiresAt    = "expiresAt"
	keyUser         = "user"
)

// TokenStorage implements ports.TokenStore on top of an injected
// ports.KeyValueStore. Unreadable slots (missing, empty, corrupt JSON, bad
// timestamp) are reported as absent.
type TokenStorage struct {
	kv  ports.KeyValueStore
	log zerolog.Logger
}

func NewTokenStorage(kv ports.KeyValueStore, log zerolog.Logger) *TokenStorage {
	return &TokenStorage{kv: kv, log: log}
}

func (s *TokenStorage) AccessToken() (string, bool) {
	v, ok := s.kv.Get(keyAccessToken)
	return v, ok && v != ""
}

func (s *TokenStorage) RefreshToken() (string, bool) {
	v, ok := s.kv.Get(keyRefreshToken)
	return v, ok && v != ""
}

func (s *TokenStorage) ExpiresAt() (time.Time, bool) {
	raw, ok := s.kv.Get(keyExpiresAt)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		s.log.Warn().Str("expiresAt", raw).Err(err).Msg("stored expiry is not RFC 3339, treating as absent")
		return time.Time{}, false
	}
	return t, true
}

func (s *TokenStorage) User() (*domain.UserProfile, bool) {
	raw, ok := s.kv.Get(keyUser)
	if !ok {
		return nil, false
	}
	var user domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user profile is not valid JSON, treating as absent")
		return nil, false
	}
	return &user, true
}

// SetSession persists a full login result: all four slots.
func (s *TokenStorage) SetSession(user *domain.UserProfile, tokens domain.TokenPair) {
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot serialise user profile, slot not written")
	} else {
		s.kv.Set(keyUser, string(data))
	}
	s.SetTokens(tokens)
}

// SetTokens persists a refresh result: the three token slots, user untouched.
func (s *TokenStorage) SetTokens(tokens domain.TokenPair) {
	s.kv.Set(keyAccessToken, tokens.AccessToken)
	s.kv.Set(keyRefreshToken, tokens.RefreshToken)
	s.kv.Set(keyExpiresAt, tokens.ExpiresAt.Format(time.RFC3339))
}

// Clear removes all four slots together.
func (s *TokenStorage) Clear() {
	s.kv.Delete(keyAccessToken)
	s.kv.Delete(keyRefreshToken)
	s.kv.Delete(keyExpiresAt)
	s.kv.Delete(keyUser)
}

var _ ports.TokenStore = (*TokenStorage)(nil)
