package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dishly-app/dishly/internal/logger"
)

func TestMessageForCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"EMAIL_EXISTS", "This email is already registered"},
		{"INVALID_EMAIL", "Invalid email address"},
		{"WEAK_PASSWORD", "Password is too weak (minimum 6 characters)"},
		{"EMAIL_NOT_FOUND", "No account found with this email"},
		{"INVALID_PASSWORD", "Incorrect password"},
		{"INVALID_LOGIN_CREDENTIALS", "Invalid email or password"},
		{"USER_DISABLED", "This account has been disabled"},
		{"OPERATION_NOT_ALLOWED", "Operation not allowed"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", "Too many failed attempts. Please try again later"},
		// Codes can carry a trailing explanation.
		{"WEAK_PASSWORD : Password should be at least 6 characters", "Password is too weak (minimum 6 characters)"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access temporarily disabled", "Too many failed attempts. Please try again later"},
		// Unknown codes fall back to the generic message.
		{"SOMETHING_NEW", fallbackMessage},
		{"", fallbackMessage},
	}

	for _, tt := range tests {
		if got := messageForCode(tt.code); got != tt.want {
			t.Errorf("messageForCode(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestSignInSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/accounts:signInWithPassword" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.RawQuery)
		}

		var body credentialsPayload
		json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "a@b.c" || body.Password != "secret" || !body.ReturnSecureToken {
			t.Errorf("unexpected payload: %+v", body)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"idToken": "tok-123",
			"email":   "a@b.c",
			"localId": "u1",
		})
	}))
	defer srv.Close()

	c := NewFirebaseClient("test-key", logger.New(logger.LevelOff, nil), WithEndpoint(srv.URL))
	tok, err := c.SignIn(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("expected tok-123, got %q", tok)
	}
}

func TestSignInRejectionMapsToProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "EMAIL_NOT_FOUND"},
		})
	}))
	defer srv.Close()

	c := NewFirebaseClient("test-key", logger.New(logger.LevelOff, nil), WithEndpoint(srv.URL))
	_, err := c.SignIn(context.Background(), "nobody@b.c", "secret")

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.Code != "EMAIL_NOT_FOUND" {
		t.Fatalf("expected code EMAIL_NOT_FOUND, got %q", pe.Code)
	}
	if pe.Message != "No account found with this email" {
		t.Fatalf("unexpected message: %q", pe.Message)
	}
	if UserMessage(err) != "No account found with this email" {
		t.Fatalf("UserMessage mismatch: %q", UserMessage(err))
	}
}

func TestSignUpUsesSignUpOperation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signUp" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"idToken": "tok-new"})
	}))
	defer srv.Close()

	c := NewFirebaseClient("test-key", logger.New(logger.LevelOff, nil), WithEndpoint(srv.URL))
	tok, err := c.SignUp(context.Background(), "new@b.c", "secret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if tok != "tok-new" {
		t.Fatalf("expected tok-new, got %q", tok)
	}
}

func TestUserMessageFallsBackForPlainErrors(t *testing.T) {
	if got := UserMessage(errors.New("connection refused")); got != fallbackMessage {
		t.Fatalf("expected fallback message, got %q", got)
	}
}
