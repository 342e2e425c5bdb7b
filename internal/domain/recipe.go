// Package domain defines the core types and interfaces for the dishly client.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// Meal is a lightweight search result: what the backend returns for an
// ingredient search, enough to render a card and fetch the full detail.
type Meal struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// Recipe is the full detail record for a single meal.
type Recipe struct {
	ID           string       `json:"idMeal"`
	Name         string       `json:"strMeal"`
	Category     string       `json:"strCategory"`
	Area         string       `json:"strArea"`
	Instructions string       `json:"strInstructions"`
	Thumb        string       `json:"strMealThumb"`
	YouTube      string       `json:"strYoutube"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// Ingredient pairs an ingredient name with its free-text measure
// ("2 cups", "a pinch", ...). Order matters and is preserved.
type Ingredient struct {
	Name    string `json:"ingredient"`
	Measure string `json:"measure"`
}

// SavedRecipe is a recipe persisted to the caller's collection. The field
// names follow the save endpoint's wire format rather than the meal detail's.
type SavedRecipe struct {
	MealID       string       `json:"meal_id"`
	Name         string       `json:"meal_name"`
	Thumb        string       `json:"meal_thumb"`
	Category     string       `json:"category"`
	Area         string       `json:"area"`
	Instructions string       `json:"instructions"`
	Ingredients  []Ingredient `json:"ingredients"`
	SavedAt      string       `json:"saved_at"`
}

// savedAtLayouts are the timestamp shapes the backend has been seen to emit.
// The primary one is a naive ISO-8601 string without a zone offset.
var savedAtLayouts = []string{
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// SavedOn returns the save timestamp formatted as a short date, or the raw
// string when it doesn't parse.
func (s SavedRecipe) SavedOn() string {
	for _, layout := range savedAtLayouts {
		if t, err := time.Parse(layout, s.SavedAt); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s.SavedAt
}

// User identifies the authenticated account as reported by the backend's
// token verification endpoint.
type User struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}
