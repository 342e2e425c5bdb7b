// Package auth manages the user's session: credential verification
// against the identity provider, token persistence, and typed
// authentication-state events consumed by the UI.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
)

// DefaultIdentityEndpoint is the public Identity Toolkit REST base.
const DefaultIdentityEndpoint = "https://identitytoolkit.googleapis.com/v1"

// fallbackMessage is shown for provider error codes with no mapping.
const fallbackMessage = "An error occurred. Please try again."

// errorMessages maps provider error codes to the user-facing strings
// rendered inline in the auth dialog.
var errorMessages = map[string]string{
	"EMAIL_EXISTS":                "This email is already registered",
	"INVALID_EMAIL":               "Invalid email address",
	"OPERATION_NOT_ALLOWED":       "Operation not allowed",
	"WEAK_PASSWORD":               "Password is too weak (minimum 6 characters)",
	"USER_DISABLED":               "This account has been disabled",
	"EMAIL_NOT_FOUND":             "No account found with this email",
	"INVALID_PASSWORD":            "Incorrect password",
	"INVALID_LOGIN_CREDENTIALS":   "Invalid email or password",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "Too many failed attempts. Please try again later",
}

// ProviderError is a credential-verification failure with a message fit
// for direct display. It is never re-thrown past the auth dialog.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string { return e.Message }

// UserMessage converts any error from a Login/Signup call into the text
// the inline error region should show.
func UserMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return fallbackMessage
}

// messageForCode resolves a provider code to its display string. Codes can
// arrive with a trailing explanation ("TOO_MANY_ATTEMPTS_TRY_LATER : ...");
// only the leading token counts.
func messageForCode(code string) string {
	code = strings.TrimSpace(code)
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return fallbackMessage
}

// ── Firebase REST client ─────────────────────────────────────────

// Compile-time interface check.
var _ domain.IdentityProvider = (*FirebaseClient)(nil)

// FirebaseOption configures the FirebaseClient.
type FirebaseOption func(*FirebaseClient)

// WithEndpoint overrides the identity endpoint (tests, emulators).
func WithEndpoint(endpoint string) FirebaseOption {
	return func(c *FirebaseClient) { c.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) FirebaseOption {
	return func(c *FirebaseClient) { c.http.Timeout = d }
}

// FirebaseClient verifies email/password credentials against the Firebase
// Auth REST API and returns ID tokens.
type FirebaseClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
	log      *logger.Logger
}

// NewFirebaseClient creates an identity client for the given web API key.
func NewFirebaseClient(apiKey string, log *logger.Logger, opts ...FirebaseOption) *FirebaseClient {
	c := &FirebaseClient{
		endpoint: DefaultIdentityEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type credentialsPayload struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type tokenResponse struct {
	IDToken string `json:"idToken"`
	Email   string `json:"email"`
	LocalID string `json:"localId"`
}

type providerErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email/password for an ID token.
func (c *FirebaseClient) SignIn(ctx context.Context, email, password string) (string, error) {
	return c.call(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp creates an account and returns its ID token.
func (c *FirebaseClient) SignUp(ctx context.Context, email, password string) (string, error) {
	return c.call(ctx, "accounts:signUp", email, password)
}

func (c *FirebaseClient) call(ctx context.Context, op, email, password string) (string, error) {
	body, err := json.Marshal(credentialsPayload{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", fmt.Errorf("auth: marshal payload: %w", err)
	}

	u := fmt.Sprintf("%s/%s?key=%s", c.endpoint, op, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("auth: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("identity %s for %s", op, email)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("auth: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var pe providerErrorResponse
		_ = json.Unmarshal(respBody, &pe)
		code := pe.Error.Message
		c.log.Warn("identity %s rejected: %s", op, code)
		return "", &ProviderError{Code: code, Message: messageForCode(code)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(respBody, &tok); err != nil {
		return "", fmt.Errorf("auth: unmarshal response: %w", err)
	}
	if tok.IDToken == "" {
		return "", fmt.Errorf("auth: empty token in response")
	}
	return tok.IDToken, nil
}
