package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(srv.URL, logger.New(logger.LevelOff, nil))
	return c, srv
}

func TestIngredients(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recipes/ingredients" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"ingredients": []string{"chicken", "rice"},
		})
	})
	defer srv.Close()

	got, err := c.Ingredients(context.Background())
	if err != nil {
		t.Fatalf("ingredients: %v", err)
	}
	if len(got) != 2 || got[0] != "chicken" || got[1] != "rice" {
		t.Fatalf("unexpected vocabulary: %v", got)
	}
}

func TestSearch(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ingredient"); got != "chicken breast" {
			t.Errorf("expected query ingredient=chicken breast, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"meals": []map[string]string{
				{"idMeal": "52940", "strMeal": "Brown Stew Chicken"},
				{"idMeal": "52846", "strMeal": "Chicken Basquaise"},
			},
		})
	})
	defer srv.Close()

	meals, err := c.Search(context.Background(), "chicken breast")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if meals[0].ID != "52940" || meals[0].Name != "Brown Stew Chicken" {
		t.Fatalf("unexpected first meal: %+v", meals[0])
	}
}

func TestSearchNoResultsIsNotAnError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"meals":   []any{},
			"message": "No recipes found",
		})
	})
	defer srv.Close()

	meals, err := c.Search(context.Background(), "unobtainium")
	if err != nil {
		t.Fatalf("expected no error for empty result, got %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("expected empty list, got %v", meals)
	}
}

func TestDetail(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recipes/detail/52940" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"recipe": map[string]any{
				"idMeal":          "52940",
				"strMeal":         "Brown Stew Chicken",
				"strCategory":     "Chicken",
				"strArea":         "Jamaican",
				"strInstructions": "Squeeze lime over chicken.",
				"ingredients": []map[string]string{
					{"ingredient": "Chicken", "measure": "1 whole"},
				},
			},
		})
	})
	defer srv.Close()

	r, err := c.Detail(context.Background(), "52940")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if r.Name != "Brown Stew Chicken" || r.Area != "Jamaican" {
		t.Fatalf("unexpected recipe: %+v", r)
	}
	if len(r.Ingredients) != 1 || r.Ingredients[0].Measure != "1 whole" {
		t.Fatalf("unexpected ingredients: %+v", r.Ingredients)
	}
}

func TestDetailNotFound(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	})
	defer srv.Close()

	if _, err := c.Detail(context.Background(), "0"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveSendsBearerTokenAndPayload(t *testing.T) {
	var gotAuth string
	var gotBody savePayload

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/recipes/save" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer srv.Close()

	recipe := &domain.Recipe{
		ID:           "52940",
		Name:         "Brown Stew Chicken",
		Category:     "Chicken",
		Area:         "Jamaican",
		Instructions: "Squeeze lime over chicken.",
		Ingredients:  []domain.Ingredient{{Name: "Chicken", Measure: "1 whole"}},
	}
	if err := c.Save(context.Background(), "tok-abc", recipe); err != nil {
		t.Fatalf("save: %v", err)
	}

	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotBody.MealID != "52940" || gotBody.MealName != "Brown Stew Chicken" {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
	if len(gotBody.Ingredients) != 1 || gotBody.Ingredients[0].Name != "Chicken" {
		t.Fatalf("unexpected payload ingredients: %+v", gotBody.Ingredients)
	}
}

func TestUnauthorizedMapsToDomainError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid authentication token"})
	})
	defer srv.Close()

	if _, err := c.Saved(context.Background(), "expired"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDeleteSaved(t *testing.T) {
	var gotMethod, gotPath string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer srv.Close()

	if err := c.DeleteSaved(context.Background(), "tok", "52940"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/recipes/saved/52940" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestServerDetailSurfacesInError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "database unavailable"})
	})
	defer srv.Close()

	err := c.DeleteSaved(context.Background(), "tok", "1")
	if err == nil || !strings.Contains(err.Error(), "database unavailable") {
		t.Fatalf("expected detail in error, got %v", err)
	}
}

func TestClientSideGuards(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded calls must not reach the server")
	})
	defer srv.Close()

	if _, err := c.Search(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
	if err := c.Save(context.Background(), "", &domain.Recipe{ID: "1"}); !errors.Is(err, domain.ErrNoToken) {
		t.Errorf("expected ErrNoToken from Save, got %v", err)
	}
	if _, err := c.Saved(context.Background(), ""); !errors.Is(err, domain.ErrNoToken) {
		t.Errorf("expected ErrNoToken from Saved, got %v", err)
	}
	if err := c.DeleteSaved(context.Background(), "", "1"); !errors.Is(err, domain.ErrNoToken) {
		t.Errorf("expected ErrNoToken from DeleteSaved, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/verify" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["token"] != "tok-xyz" {
			t.Errorf("expected token in body, got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"uid": "u1", "email": "a@b.c", "email_verified": true},
		})
	})
	defer srv.Close()

	u, err := c.Verify(context.Background(), "tok-xyz")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if u.UID != "u1" || u.Email != "a@b.c" || !u.EmailVerified {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestVerifyRejection(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	})
	defer srv.Close()

	if _, err := c.Verify(context.Background(), "bad"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
