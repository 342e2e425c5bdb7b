// Package api provides the HTTP client for the dishly recipe backend.
//
// Every response is a JSON envelope with a boolean success flag and, on
// failure, an optional human-readable detail string. A 401 from any
// endpoint maps to [domain.ErrUnauthorized]; all other non-2xx statuses
// are treated uniformly. No request is ever retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
)

// ── Wire types ───────────────────────────────────────────────────

type ingredientsResponse struct {
	Success     bool     `json:"success"`
	Ingredients []string `json:"ingredients"`
}

type searchResponse struct {
	Success bool          `json:"success"`
	Meals   []domain.Meal `json:"meals"`
	Message string        `json:"message"`
}

type detailResponse struct {
	Success bool           `json:"success"`
	Recipe  *domain.Recipe `json:"recipe"`
	Message string         `json:"message"`
}

type savedResponse struct {
	Success bool                 `json:"success"`
	Recipes []domain.SavedRecipe `json:"recipes"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

type verifyResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// savePayload is the body of POST /api/recipes/save.
type savePayload struct {
	MealID       string              `json:"meal_id"`
	MealName     string              `json:"meal_name"`
	MealThumb    string              `json:"meal_thumb"`
	Category     string              `json:"category"`
	Area         string              `json:"area"`
	Instructions string              `json:"instructions"`
	Ingredients  []domain.Ingredient `json:"ingredients"`
}

// errorBody is the backend's failure shape (FastAPI-style detail).
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// ── Client ───────────────────────────────────────────────────────

// Compile-time interface checks.
var (
	_ domain.RecipeService = (*Client)(nil)
	_ domain.TokenVerifier = (*Client)(nil)
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// Client talks to the recipe backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a backend client rooted at baseURL
// (e.g. "http://localhost:8000").
func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ingredients fetches the ingredient vocabulary.
func (c *Client) Ingredients(ctx context.Context) ([]string, error) {
	var out ingredientsResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes/ingredients", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Ingredients, nil
}

// Search finds meals whose main ingredient matches. A backend "no results"
// reply (success=false with an empty meal list) is returned as an empty
// slice, not an error.
func (c *Client) Search(ctx context.Context, ingredient string) ([]domain.Meal, error) {
	if strings.TrimSpace(ingredient) == "" {
		return nil, domain.ErrEmptyQuery
	}
	path := "/api/recipes/search?ingredient=" + url.QueryEscape(ingredient)
	var out searchResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Meals, nil
}

// Detail fetches the full recipe for a meal id.
func (c *Client) Detail(ctx context.Context, mealID string) (*domain.Recipe, error) {
	var out detailResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes/detail/"+url.PathEscape(mealID), "", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Recipe == nil {
		if out.Message != "" {
			return nil, fmt.Errorf("api: %s", out.Message)
		}
		return nil, domain.ErrNotFound
	}
	return out.Recipe, nil
}

// Save persists a recipe for the caller.
func (c *Client) Save(ctx context.Context, token string, r *domain.Recipe) error {
	if token == "" {
		return domain.ErrNoToken
	}
	body := savePayload{
		MealID:       r.ID,
		MealName:     r.Name,
		MealThumb:    r.Thumb,
		Category:     r.Category,
		Area:         r.Area,
		Instructions: r.Instructions,
		Ingredients:  r.Ingredients,
	}

	var out statusResponse
	if err := c.do(ctx, http.MethodPost, "/api/recipes/save", token, body, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("api: %s", firstNonEmpty(out.Detail, out.Message, "error saving recipe"))
	}
	return nil
}

// Saved lists the caller's saved recipes.
func (c *Client) Saved(ctx context.Context, token string) ([]domain.SavedRecipe, error) {
	if token == "" {
		return nil, domain.ErrNoToken
	}
	var out savedResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes/saved", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

// DeleteSaved removes one saved recipe.
func (c *Client) DeleteSaved(ctx context.Context, token, mealID string) error {
	if token == "" {
		return domain.ErrNoToken
	}
	var out statusResponse
	if err := c.do(ctx, http.MethodDelete, "/api/recipes/saved/"+url.PathEscape(mealID), token, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("api: %s", firstNonEmpty(out.Detail, out.Message, "error deleting recipe"))
	}
	return nil
}

// Verify checks a session token against the backend.
func (c *Client) Verify(ctx context.Context, token string) (*domain.User, error) {
	body := map[string]string{"token": token}
	var out verifyResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify", "", body, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, domain.ErrUnauthorized
	}
	return out.User, nil
}

// do performs one request/response round trip. token, when non-empty, is
// sent as a bearer credential. body, when non-nil, is JSON-encoded.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.log.Debug("%s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		detail := firstNonEmpty(eb.Detail, eb.Message, resp.Status)
		return fmt.Errorf("api: %s", detail)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("api: unmarshal response: %w", err)
		}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
