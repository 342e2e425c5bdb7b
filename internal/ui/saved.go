package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dishly-app/dishly/internal/domain"
)

// authGraceTimeout is how long the saved page waits for the asynchronous
// session restore before concluding nobody is signed in.
const authGraceTimeout = time.Second

// savedModel is the saved recipes page. Its content is never mutated
// optimistically: after a delete, the whole list is re-fetched from the
// backend.
type savedModel struct {
	loading      bool
	awaitingAuth bool
	authRequired bool
	loaded       bool

	recipes []domain.SavedRecipe
	cursor  int
}

// enterSaved runs the page-load logic when the saved page becomes
// frontmost: load immediately when a session exists, otherwise give the
// restore a grace window before showing the auth-required view.
func (a *App) enterSaved() tea.Cmd {
	m := &a.saved
	m.authRequired = false

	if a.session.Token() != "" {
		return a.loadSaved()
	}

	if a.authKnown {
		m.authRequired = true
		return nil
	}

	m.awaitingAuth = true
	m.loading = true
	return tea.Tick(authGraceTimeout, func(time.Time) tea.Msg {
		return authGraceMsg{}
	})
}

// loadSaved fetches the caller's saved list.
func (a *App) loadSaved() tea.Cmd {
	m := &a.saved

	token := a.session.Token()
	if token == "" {
		m.authRequired = true
		m.loading = false
		m.awaitingAuth = false
		return nil
	}

	m.authRequired = false
	m.awaitingAuth = false
	m.loading = true
	return loadSavedCmd(a.svc, token)
}

func (a *App) handleSavedKey(msg tea.KeyMsg) tea.Cmd {
	m := &a.saved

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.recipes)-1 {
			m.cursor++
		}
	case "enter":
		if !m.authRequired && m.cursor >= 0 && m.cursor < len(m.recipes) {
			a.openSavedDetail(m.recipes[m.cursor])
		}
	case "r":
		return a.loadSaved()
	}
	return nil
}

// updateSaved applies saved-page result messages.
func (a *App) updateSaved(msg tea.Msg) tea.Cmd {
	m := &a.saved

	switch msg := msg.(type) {
	case authGraceMsg:
		if m.awaitingAuth && a.session.Token() == "" {
			m.awaitingAuth = false
			m.loading = false
			m.authRequired = true
		}
		return nil

	case savedListMsg:
		m.loading = false
		if msg.err != nil {
			// 401 forces the auth-required view regardless of local token
			// presence; anything else keeps the prior content.
			if errors.Is(msg.err, domain.ErrUnauthorized) {
				m.authRequired = true
				return nil
			}
			a.log.Error("loading saved recipes: %v", msg.err)
			return a.pushToast("Error loading recipes: "+strings.TrimPrefix(msg.err.Error(), "api: "), severityError)
		}
		m.authRequired = false
		m.loaded = true
		m.recipes = msg.recipes
		if m.cursor >= len(m.recipes) {
			m.cursor = len(m.recipes) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return nil

	case deleteDoneMsg:
		a.detail.deleting = false
		if msg.err != nil {
			a.log.Error("deleting recipe %s: %v", msg.mealID, msg.err)
			return a.pushToast("Error deleting recipe: "+strings.TrimPrefix(msg.err.Error(), "api: "), severityError)
		}
		// Close the modal and re-fetch from the source of truth.
		a.overlay = overlayNone
		a.detail.pendingDelete = ""
		toastCmd := a.pushToast("Recipe deleted successfully!", severitySuccess)
		return tea.Batch(toastCmd, a.loadSaved())
	}
	return nil
}

func (a *App) handleConfirmDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		a.overlay = overlayDetail
		return a.deleteCurrentRecipe()
	case "n", "N", "esc":
		a.overlay = overlayDetail
	}
	return nil
}

// deleteCurrentRecipe removes the pending-delete target. Confirmation has
// already happened; the token check still gates the network call.
func (a *App) deleteCurrentRecipe() tea.Cmd {
	d := &a.detail

	if d.pendingDelete == "" {
		return nil
	}

	token := a.session.Token()
	if token == "" {
		return a.pushToast("Please login to delete recipes", severityError)
	}

	d.deleting = true
	a.log.Debug("deleting recipe %s", d.pendingDelete)
	return deleteCmd(a.svc, token, d.pendingDelete)
}

func (a *App) viewSaved() string {
	m := &a.saved
	s := a.styles

	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString("  " + s.Text.Render("Your saved recipes") + "\n\n")

	switch {
	case m.authRequired:
		b.WriteString("  " + s.ErrText.Render("Please login to see your saved recipes.") + "\n")
		b.WriteString("  " + s.Muted.Render("ctrl+l: login") + "\n")

	case m.loading:
		b.WriteString("  " + s.Muted.Render("Loading saved recipes...") + "\n")

	case m.loaded && len(m.recipes) == 0:
		b.WriteString("  " + s.Muted.Render("No saved recipes yet. Search for something tasty!") + "\n")

	case m.loaded:
		for i, r := range m.recipes {
			line := r.Name
			var meta []string
			if r.Category != "" {
				meta = append(meta, r.Category)
			}
			if r.Area != "" {
				meta = append(meta, r.Area)
			}
			if len(meta) > 0 {
				line += "  " + s.Muted.Render("("+strings.Join(meta, ", ")+")")
			}
			if i == m.cursor {
				b.WriteString(s.CardSelected.Render("▸ ") + s.CardSelected.Render(line) + "\n")
			} else {
				b.WriteString(s.Card.Render("  ") + s.Card.Render(line) + "\n")
			}
		}
		b.WriteByte('\n')
		b.WriteString("  " + s.Muted.Render(fmt.Sprintf("%d saved recipe(s)", len(m.recipes))) + "\n")
	}

	b.WriteByte('\n')
	b.WriteString("  " + s.Muted.Render("enter: view · r: reload · tab: search · ctrl+l: account · ctrl+c: quit") + "\n")
	return b.String()
}
