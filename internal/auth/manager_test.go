package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
	"github.com/dishly-app/dishly/internal/store"
)

// ── Fakes ────────────────────────────────────────────────────────

type fakeIdentity struct {
	signIns int
	signUps int
	token   string
	err     error
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (string, error) {
	f.signIns++
	return f.token, f.err
}

func (f *fakeIdentity) SignUp(ctx context.Context, email, password string) (string, error) {
	f.signUps++
	return f.token, f.err
}

type fakeVerifier struct {
	user *domain.User
	err  error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*domain.User, error) {
	return f.user, f.err
}

type memLocal map[string]string

func (m memLocal) Get(key string) string       { return m[key] }
func (m memLocal) Set(key, value string) error { m[key] = value; return nil }
func (m memLocal) Delete(key string) error     { delete(m, key); return nil }

func newTestManager(identity *fakeIdentity, verifier *fakeVerifier, local memLocal) *Manager {
	return NewManager(identity, verifier, local, logger.New(logger.LevelOff, nil))
}

func mustEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	default:
		t.Fatal("expected a published auth event")
		return Event{}
	}
}

// ── Tests ────────────────────────────────────────────────────────

func TestLoginEstablishesSession(t *testing.T) {
	identity := &fakeIdentity{token: "tok-1"}
	verifier := &fakeVerifier{user: &domain.User{UID: "u1", Email: "a@b.c"}}
	local := memLocal{}

	m := newTestManager(identity, verifier, local)
	events := m.Events().Subscribe()

	if err := m.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if identity.signIns != 1 {
		t.Fatalf("expected 1 sign-in call, got %d", identity.signIns)
	}
	if local[store.KeyAuthToken] != "tok-1" {
		t.Fatalf("expected stored token, got %q", local[store.KeyAuthToken])
	}
	if u := m.CurrentUser(); u == nil || u.UID != "u1" {
		t.Fatalf("expected verified user, got %+v", u)
	}

	ev := mustEvent(t, events)
	if ev.Kind != EventAuthenticated {
		t.Fatalf("expected authenticated event, got %s", ev.Kind)
	}
	if ev.User == nil || ev.User.Email != "a@b.c" {
		t.Fatalf("expected user on event, got %+v", ev.User)
	}
}

func TestLoginSurvivesFlakyVerify(t *testing.T) {
	identity := &fakeIdentity{token: "tok-1"}
	verifier := &fakeVerifier{err: errors.New("connection refused")}
	local := memLocal{}

	m := newTestManager(identity, verifier, local)
	events := m.Events().Subscribe()

	if err := m.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("login should succeed despite verify failure: %v", err)
	}
	if local[store.KeyAuthToken] != "tok-1" {
		t.Fatal("token should be stored even when verify fails")
	}
	if u := m.CurrentUser(); u == nil || u.Email != "a@b.c" {
		t.Fatalf("expected email-only user, got %+v", u)
	}
	if ev := mustEvent(t, events); ev.Kind != EventAuthenticated {
		t.Fatalf("expected authenticated event, got %s", ev.Kind)
	}
}

func TestSignupMismatchSkipsProvider(t *testing.T) {
	identity := &fakeIdentity{token: "tok-1"}
	m := newTestManager(identity, &fakeVerifier{}, memLocal{})

	err := m.Signup(context.Background(), "a@b.c", "secret", "different")
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if identity.signUps != 0 {
		t.Fatalf("mismatch must not reach the provider, got %d calls", identity.signUps)
	}
	if UserMessage(err) != "Passwords do not match" {
		t.Fatalf("unexpected message: %q", UserMessage(err))
	}
}

func TestLogoutClearsSession(t *testing.T) {
	local := memLocal{store.KeyAuthToken: "tok-1"}
	m := newTestManager(&fakeIdentity{}, &fakeVerifier{}, local)
	events := m.Events().Subscribe()

	if err := m.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := local[store.KeyAuthToken]; ok {
		t.Fatal("expected token cleared")
	}
	if m.CurrentUser() != nil {
		t.Fatal("expected no current user after logout")
	}
	if ev := mustEvent(t, events); ev.Kind != EventSignedOut {
		t.Fatalf("expected signed-out event, got %s", ev.Kind)
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		verifier   *fakeVerifier
		wantKind   EventKind
		wantStored string
	}{
		{
			name:     "no token",
			verifier: &fakeVerifier{},
			wantKind: EventSignedOut,
		},
		{
			name:       "valid token",
			token:      "tok-1",
			verifier:   &fakeVerifier{user: &domain.User{UID: "u1", Email: "a@b.c"}},
			wantKind:   EventAuthenticated,
			wantStored: "tok-1",
		},
		{
			name:     "rejected token is cleared",
			token:    "tok-expired",
			verifier: &fakeVerifier{err: domain.ErrUnauthorized},
			wantKind: EventSignedOut,
		},
		{
			name:       "unreachable backend keeps token",
			token:      "tok-1",
			verifier:   &fakeVerifier{err: errors.New("connection refused")},
			wantKind:   EventSignedOut,
			wantStored: "tok-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := memLocal{}
			if tt.token != "" {
				local[store.KeyAuthToken] = tt.token
			}
			m := newTestManager(&fakeIdentity{}, tt.verifier, local)
			events := m.Events().Subscribe()

			m.Restore(context.Background())

			if ev := mustEvent(t, events); ev.Kind != tt.wantKind {
				t.Fatalf("expected %s event, got %s", tt.wantKind, ev.Kind)
			}
			if got := local[store.KeyAuthToken]; got != tt.wantStored {
				t.Fatalf("expected stored token %q, got %q", tt.wantStored, got)
			}
		})
	}
}

func TestTokenLooksValid(t *testing.T) {
	sign := func(exp time.Time) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": exp.Unix(),
		}).SignedString([]byte("test"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return tok
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"no token", "", false},
		{"live jwt", sign(time.Now().Add(time.Hour)), true},
		{"expired jwt", sign(time.Now().Add(-time.Hour)), false},
		{"opaque token", "not-a-jwt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := memLocal{}
			if tt.token != "" {
				local[store.KeyAuthToken] = tt.token
			}
			m := newTestManager(&fakeIdentity{}, &fakeVerifier{}, local)
			if got := m.TokenLooksValid(); got != tt.want {
				t.Fatalf("TokenLooksValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventsBroadcastDoesNotBlock(t *testing.T) {
	e := NewEvents()
	ch := e.Subscribe()

	// Overfill the subscriber buffer; Publish must never block.
	for i := 0; i < 20; i++ {
		e.Publish(Event{Kind: EventSignedOut})
	}

	if len(ch) == 0 {
		t.Fatal("expected buffered events")
	}
}
