package domain

import "context"

// RecipeService is the backend recipe API. The three read operations are
// anonymous; save, list and delete present a bearer token.
type RecipeService interface {
	// Ingredients returns the ingredient vocabulary used for search
	// suggestions.
	Ingredients(ctx context.Context) ([]string, error)

	// Search finds meals by main ingredient. The ingredient must already be
	// trimmed and non-empty; an empty result is not an error.
	Search(ctx context.Context, ingredient string) ([]Meal, error)

	// Detail fetches the full recipe for a meal id.
	Detail(ctx context.Context, mealID string) (*Recipe, error)

	// Save persists a recipe to the caller's collection.
	Save(ctx context.Context, token string, r *Recipe) error

	// Saved lists the caller's saved recipes, newest first.
	Saved(ctx context.Context, token string) ([]SavedRecipe, error)

	// DeleteSaved removes one saved recipe by meal id.
	DeleteSaved(ctx context.Context, token, mealID string) error
}

// TokenVerifier checks a session token against the backend and returns the
// account it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// IdentityProvider performs credential verification with the external
// identity service. Both calls return an opaque session token on success.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, email, password string) (string, error)
}

// LocalStore is the persistent key/value store for browser-localStorage-style
// state: the session token and the theme preference. Writes are synchronous.
type LocalStore interface {
	Get(key string) string
	Set(key, value string) error
	Delete(key string) error
}
