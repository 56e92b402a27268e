package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storekit/backoffice/internal/core/domain"
)

type stubKV struct {
	data map[string]string
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string]string)}
}

func (s *stubKV) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *stubKV) Set(key, value string) { s.data[key] = value }
func (s *stubKV) Delete(key string)     { delete(s.data, key) }
func (s *stubKV) Clear()                { s.data = make(map[string]string) }

type stubGateway struct {
	result     *domain.LoginResult
	err        error
	loginCalls int
}

func (g *stubGateway) Login(_ context.Context, _, _ string) (*domain.LoginResult, error) {
	g.loginCalls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func (g *stubGateway) RefreshTokens(_ context.Context, _ string) (*domain.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func testUser() *domain.UserProfile {
	return &domain.UserProfile{
		ID:        "u1",
		Email:     "a@b.com",
		FullName:  "Ada Boole",
		Role:      domain.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func testTokens() domain.TokenPair {
	return domain.TokenPair{
		AccessToken:  "AT1",
		RefreshToken: "RT1",
		ExpiresAt:    time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestSession(kv *stubKV, gateway *stubGateway) *Session {
	storage := NewTokenStorage(kv, zerolog.Nop())
	if gateway == nil {
		return NewSession(storage, nil, zerolog.Nop())
	}
	return NewSession(storage, gateway, zerolog.Nop())
}

func TestSessionLoginPersistsAndAuthenticates(t *testing.T) {
	kv := newStubKV()
	session := newTestSession(kv, nil)
	session.Initialize()

	if session.IsAuthenticated() {
		t.Fatalf("fresh session must not be authenticated")
	}

	user := testUser()
	tokens := testTokens()
	session.Login(user, tokens)

	state := session.State()
	if !state.Authenticated {
		t.Fatalf("expected authenticated state after login")
	}
	if state.AccessToken != "AT1" || state.RefreshToken != "RT1" {
		t.Fatalf("unexpected tokens: %q / %q", state.AccessToken, state.RefreshToken)
	}
	if !state.ExpiresAt.Equal(tokens.ExpiresAt) {
		t.Fatalf("expiry mismatch: got %v want %v", state.ExpiresAt, tokens.ExpiresAt)
	}
	if state.User == nil || state.User.ID != "u1" || state.User.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", state.User)
	}
}

func TestSessionStateSurvivesReload(t *testing.T) {
	kv := newStubKV()
	session := newTestSession(kv, nil)
	session.Login(testUser(), testTokens())
	before := session.State()

	// Simulated application restart over the same persisted slots.
	reloaded := newTestSession(kv, nil)
	reloaded.Initialize()
	after := reloaded.State()

	if !after.Authenticated {
		t.Fatalf("reloaded session must be authenticated")
	}
	if after.AccessToken != before.AccessToken || after.RefreshToken != before.RefreshToken {
		t.Fatalf("token mismatch after reload: %+v vs %+v", after, before)
	}
	if !after.ExpiresAt.Equal(before.ExpiresAt) {
		t.Fatalf("expiry mismatch after reload: %v vs %v", after.ExpiresAt, before.ExpiresAt)
	}
	if *after.User != *before.User {
		t.Fatalf("user mismatch after reload: %+v vs %+v", after.User, before.User)
	}
}

func TestSessionLogoutIsIdempotent(t *testing.T) {
	kv := newStubKV()
	session := newTestSession(kv, nil)
	session.Login(testUser(), testTokens())

	for i := 0; i < 3; i++ {
		session.Logout()
		state := session.State()
		if state.Authenticated || state.User != nil || state.AccessToken != "" ||
			state.RefreshToken != "" || !state.ExpiresAt.IsZero() {
			t.Fatalf("logout %d left residual state: %+v", i+1, state)
		}
	}
	if len(kv.data) != 0 {
		t.Fatalf("logout left slots in the store: %v", kv.data)
	}
}

func TestSessionRefreshKeepsUser(t *testing.T) {
	kv := newStubKV()
	session := newTestSession(kv, nil)
	session.Login(testUser(), testTokens())

	rotated := domain.TokenPair{
		AccessToken:  "AT2",
		RefreshToken: "RT2",
		ExpiresAt:    time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	session.Refresh(rotated)

	state := session.State()
	if state.AccessToken != "AT2" || state.RefreshToken != "RT2" {
		t.Fatalf("tokens not rotated: %+v", state)
	}
	if state.User == nil || state.User.ID != "u1" {
		t.Fatalf("refresh must not touch the user, got %+v", state.User)
	}
	if !state.Authenticated {
		t.Fatalf("refresh must keep the session authenticated")
	}

	storage := NewTokenStorage(kv, zerolog.Nop())
	if at, _ := storage.AccessToken(); at != "AT2" {
		t.Fatalf("store not updated, access token %q", at)
	}
	if user, ok := storage.User(); !ok || user.ID != "u1" {
		t.Fatalf("stored user lost on refresh")
	}
}

func TestSessionSubscribersRunSynchronously(t *testing.T) {
	kv := newStubKV()
	session := newTestSession(kv, nil)

	var seen []domain.SessionState
	unsubscribe := session.Subscribe(func(s domain.SessionState) {
		seen = append(seen, s)
	})

	session.Login(testUser(), testTokens())
	if len(seen) != 1 || !seen[0].Authenticated {
		t.Fatalf("listener not notified synchronously on login: %+v", seen)
	}

	session.Logout()
	if len(seen) != 2 || seen[1].Authenticated {
		t.Fatalf("listener not notified on logout: %+v", seen)
	}

	unsubscribe()
	session.Login(testUser(), testTokens())
	if len(seen) != 2 {
		t.Fatalf("unsubscribed listener still invoked")
	}
}

func TestSessionAuthenticate(t *testing.T) {
	gateway := &stubGateway{
		result: &domain.LoginResult{
			AccessToken:  "AT1",
			RefreshToken: "RT1",
			ExpiresAt:    time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
			User:         testUser(),
		},
	}
	session := newTestSession(newStubKV(), gateway)

	if err := session.Authenticate(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	state := session.State()
	if state.AccessToken != "AT1" || !state.Authenticated {
		t.Fatalf("unexpected state after authenticate: %+v", state)
	}
	if gateway.loginCalls != 1 {
		t.Fatalf("expected exactly one gateway call, got %d", gateway.loginCalls)
	}
}

func TestSessionAuthenticateFailureLeavesStateUntouched(t *testing.T) {
	gateway := &stubGateway{err: errors.New("boom")}
	session := newTestSession(newStubKV(), gateway)

	if err := session.Authenticate(context.Background(), "a@b.com", "bad"); err == nil {
		t.Fatalf("expected error")
	}
	if session.IsAuthenticated() {
		t.Fatalf("failed login must not authenticate")
	}
}

func TestSessionAuthenticateWithoutGateway(t *testing.T) {
	session := newTestSession(newStubKV(), nil)
	err := session.Authenticate(context.Background(), "a@b.com", "secret")
	if !errors.Is(err, domain.ErrNoAuthGateway) {
		t.Fatalf("expected ErrNoAuthGateway, got %v", err)
	}
}

func TestTokenStorageCorruptSlotsReadAbsent(t *testing.T) {
	kv := newStubKV()
	kv.Set("user", "{not json")
	kv.Set("expiresAt", "yesterday")
	storage := NewTokenStorage(kv, zerolog.Nop())

	if _, ok := storage.User(); ok {
		t.Fatalf("corrupt user slot must read absent")
	}
	if _, ok := storage.ExpiresAt(); ok {
		t.Fatalf("corrupt expiry slot must read absent")
	}
}
