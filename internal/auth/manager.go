package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
	"github.com/dishly-app/dishly/internal/store"
)

// Manager owns the session lifecycle: it signs users in and out through
// the identity provider, persists the bearer token, and broadcasts typed
// auth-state events. Safe for concurrent use.
type Manager struct {
	identity domain.IdentityProvider
	verifier domain.TokenVerifier
	local    domain.LocalStore
	events   *Events
	log      *logger.Logger

	mu   sync.RWMutex
	user *domain.User
}

// NewManager wires a session manager.
func NewManager(identity domain.IdentityProvider, verifier domain.TokenVerifier, local domain.LocalStore, log *logger.Logger) *Manager {
	return &Manager{
		identity: identity,
		verifier: verifier,
		local:    local,
		events:   NewEvents(),
		log:      log,
	}
}

// Events returns the auth-state broadcast for subscription.
func (m *Manager) Events() *Events { return m.events }

// Token returns the stored session token, or "" when signed out.
func (m *Manager) Token() string {
	return m.local.Get(store.KeyAuthToken)
}

// CurrentUser returns the verified account, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// TokenLooksValid reports whether a token is present and not visibly
// expired. The token's exp claim is read without signature verification;
// the backend remains the judge of real validity. Opaque tokens count as
// valid-looking.
func (m *Manager) TokenLooksValid() bool {
	tok := m.Token()
	if tok == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}

// Login verifies credentials with the identity provider and establishes a
// session. Provider failures come back as *ProviderError for inline
// display; the dialog stays open on failure.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.identity.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	return m.establish(ctx, token, email)
}

// Signup creates an account. The confirmation check happens before any
// network call; a mismatch aborts with the literal inline message.
func (m *Manager) Signup(ctx context.Context, email, password, confirm string) error {
	if password != confirm {
		return &ProviderError{Code: "PASSWORD_MISMATCH", Message: "Passwords do not match"}
	}

	token, err := m.identity.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	return m.establish(ctx, token, email)
}

// establish stores the token, learns the account behind it, and announces
// the session. Verification is best-effort: the login already succeeded,
// so a flaky verify call only costs us the uid.
func (m *Manager) establish(ctx context.Context, token, email string) error {
	if err := m.local.Set(store.KeyAuthToken, token); err != nil {
		return err
	}

	user := &domain.User{Email: email}
	if verified, err := m.verifier.Verify(ctx, token); err == nil {
		user = verified
	} else {
		m.log.Warn("token verify after login failed: %v", err)
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.log.Info("session established for %s", email)
	m.events.Publish(Event{Kind: EventAuthenticated, User: user})
	return nil
}

// Logout clears the session and announces the sign-out. The stored token
// is the only provider-side artifact we hold, so clearing it is the whole
// operation; a store write failure leaves the session as-is.
func (m *Manager) Logout() error {
	if err := m.local.Delete(store.KeyAuthToken); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	m.log.Info("signed out")
	m.events.Publish(Event{Kind: EventSignedOut})
	return nil
}

// Restore re-establishes a previous session at startup. It reads the
// stored token and verifies it with the backend asynchronously relative
// to the UI, publishing exactly one event:
//
//   - no token                → EventSignedOut
//   - token verifies          → EventAuthenticated
//   - backend says 401        → token cleared, EventSignedOut
//   - backend unreachable     → EventSignedOut (token kept; the backend
//     will re-judge it on the next protected call)
func (m *Manager) Restore(ctx context.Context) {
	token := m.Token()
	if token == "" {
		m.events.Publish(Event{Kind: EventSignedOut})
		return
	}

	user, err := m.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			m.log.Info("stored token rejected, clearing")
			_ = m.local.Delete(store.KeyAuthToken)
		} else {
			m.log.Warn("session restore verify failed: %v", err)
		}
		m.events.Publish(Event{Kind: EventSignedOut})
		return
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.log.Info("session restored for %s", user.Email)
	m.events.Publish(Event{Kind: EventAuthenticated, User: user})
}
