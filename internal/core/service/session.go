package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/core/ports"
)

// Listener observes session state changes. Listeners run synchronously
// inside the mutating call, before control returns to the caller, and must
// not call back into the Session.
type Listener func(domain.SessionState)

// Session is the single source of truth for "who is logged in". It is
// constructed explicitly and injected into whatever needs it; exactly one
// instance exists per running application.
//
// All mutation goes through Initialize, Login, Logout and Refresh. State
// updates are atomic: no caller can observe a half-updated snapshot.
type Session struct {
	tokens  ports.TokenStore
	gateway ports.AuthGateway // may be nil when login is driven externally
	log     zerolog.Logger

	mu        sync.Mutex
	state     domain.SessionState
	listeners map[int]Listener
	nextID    int
}

func NewSession(tokens ports.TokenStore, gateway ports.AuthGateway, log zerolog.Logger) *Session {
	return &Session{
		tokens:    tokens,
		gateway:   gateway,
		log:       log,
		listeners: make(map[int]Listener),
	}
}

// Initialize reads all four slots from the token store once, at startup, and
// derives the initial authenticated flag.
func (s *Session) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.SessionState{}
	state.AccessToken, _ = s.tokens.AccessToken()
	state.RefreshToken, _ = s.tokens.RefreshToken()
	state.ExpiresAt, _ = s.tokens.ExpiresAt()
	state.User, _ = s.tokens.User()
	state.Authenticated = state.ComputeAuthenticated()

	s.state = state
	s.log.Debug().Bool("authenticated", state.Authenticated).Msg("session initialised from store")
	s.notifyLocked()
}

// Login persists the full login result and marks the session authenticated.
// This is the only path that sets the authenticated flag true.
func (s *Session) Login(user *domain.UserProfile, tokens domain.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens.SetSession(user, tokens)
	s.state = domain.SessionState{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
	s.state.Authenticated = s.state.ComputeAuthenticated()
	s.log.Info().Str("user", user.Email).Msg("logged in")
	s.notifyLocked()
}

// Logout clears the token store and resets the session to the all-absent
// state. Idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens.Clear()
	s.state = domain.SessionState{}
	s.notifyLocked()
}

// Refresh updates the three token fields, leaving the user untouched.
func (s *Session) Refresh(tokens domain.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens.SetTokens(tokens)
	s.state.AccessToken = tokens.AccessToken
	s.state.RefreshToken = tokens.RefreshToken
	s.state.ExpiresAt = tokens.ExpiresAt
	s.state.Authenticated = s.state.ComputeAuthenticated()
	s.notifyLocked()
}

// Authenticate drives a login through the auth gateway and applies the
// result. It is the programmatic equivalent of the login form.
func (s *Session) Authenticate(ctx context.Context, email, password string) error {
	if s.gateway == nil {
		return domain.ErrNoAuthGateway
	}
	result, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.Login(result.User, result.Tokens())
	return nil
}

// State returns a snapshot of the current session state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether both an access token and a user profile
// are present.
func (s *Session) IsAuthenticated() bool {
	return s.State().Authenticated
}

// Subscribe registers a listener for state changes and returns a function
// that removes it.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) notifyLocked() {
	for _, fn := range s.listeners {
		fn(s.state)
	}
}
