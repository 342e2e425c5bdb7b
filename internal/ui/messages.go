package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dishly-app/dishly/internal/auth"
	"github.com/dishly-app/dishly/internal/domain"
)

// ── Messages ─────────────────────────────────────────────────────
// Every network round trip is a tea.Cmd that reports back as one of
// these. The Update loop owns all state; commands never touch it.

type ingredientsMsg struct {
	items []string
	err   error
}

type searchDoneMsg struct {
	meals []domain.Meal
	err   error
}

// detailDoneMsg carries the sequence number of the request that produced
// it; stale responses are dropped instead of winning by arriving last.
type detailDoneMsg struct {
	seq    int
	recipe *domain.Recipe
	err    error
}

type saveDoneMsg struct{ err error }

// saveResetMsg re-enables the save control after the "Saved!" flash.
type saveResetMsg struct{}

type savedListMsg struct {
	recipes []domain.SavedRecipe
	err     error
}

type deleteDoneMsg struct {
	mealID string
	err    error
}

type authResultMsg struct {
	mode authMode
	err  error
}

// authEventMsg wraps a typed auth-state event pumped from the session
// manager's broadcast into the program.
type authEventMsg struct{ event auth.Event }

// authGraceMsg fires when the saved page's wait for asynchronous session
// restoration runs out.
type authGraceMsg struct{}

// themeFlashEndMsg ends the brief glyph highlight after a theme toggle.
type themeFlashEndMsg struct{}

// ── Commands ─────────────────────────────────────────────────────

func loadIngredientsCmd(svc domain.RecipeService) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.Ingredients(context.Background())
		return ingredientsMsg{items: items, err: err}
	}
}

func searchCmd(svc domain.RecipeService, ingredient string) tea.Cmd {
	return func() tea.Msg {
		meals, err := svc.Search(context.Background(), ingredient)
		return searchDoneMsg{meals: meals, err: err}
	}
}

func fetchDetailCmd(ctx context.Context, svc domain.RecipeService, mealID string, seq int) tea.Cmd {
	return func() tea.Msg {
		recipe, err := svc.Detail(ctx, mealID)
		return detailDoneMsg{seq: seq, recipe: recipe, err: err}
	}
}

func saveCmd(svc domain.RecipeService, token string, r *domain.Recipe) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: svc.Save(context.Background(), token, r)}
	}
}

func loadSavedCmd(svc domain.RecipeService, token string) tea.Cmd {
	return func() tea.Msg {
		recipes, err := svc.Saved(context.Background(), token)
		return savedListMsg{recipes: recipes, err: err}
	}
}

func deleteCmd(svc domain.RecipeService, token, mealID string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{mealID: mealID, err: svc.DeleteSaved(context.Background(), token, mealID)}
	}
}

func restoreCmd(session Session) tea.Cmd {
	return func() tea.Msg {
		session.Restore(context.Background())
		return nil
	}
}

// waitAuthEventCmd blocks on the auth broadcast and re-arms itself after
// every delivery via the Update loop.
func waitAuthEventCmd(events <-chan auth.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return authEventMsg{event: ev}
	}
}
