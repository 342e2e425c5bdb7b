package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dishly-app/dishly/internal/domain"
)

// maxSuggestions bounds the datalist-style completion row.
const maxSuggestions = 5

// searchModel is the ingredient search page: an input with vocabulary
// suggestions, a result list, and a loading spinner.
type searchModel struct {
	input textinput.Model
	spin  spinner.Model

	vocab   []string // ingredient vocabulary, fetched once per run
	matches []string // current prefix suggestions

	meals     []domain.Meal
	cursor    int // -1 while typing; >= 0 selects a result card
	searching bool
	searched  bool

	width int
}

func newSearchModel(styles Styles) searchModel {
	ti := textinput.New()
	ti.Placeholder = "chicken, rice, salmon..."
	ti.Prompt = "ingredient> "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return searchModel{
		input:  ti,
		spin:   sp,
		cursor: -1,
	}
}

func (m *searchModel) setWidth(w int) {
	m.width = w
	if w > 20 {
		m.input.Width = w - 20
	}
}

// updateComponents forwards component messages (blink, spinner frames).
func (m *searchModel) updateComponents(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.searching {
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// refreshMatches recomputes prefix suggestions from the vocabulary.
func (m *searchModel) refreshMatches() {
	m.matches = m.matches[:0]
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if q == "" {
		return
	}
	for _, ing := range m.vocab {
		if strings.HasPrefix(strings.ToLower(ing), q) && !strings.EqualFold(ing, q) {
			m.matches = append(m.matches, ing)
			if len(m.matches) == maxSuggestions {
				return
			}
		}
	}
}

// handleSearchKey handles keys while the search page is frontmost.
func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	m := &a.search

	switch msg.String() {
	case "up":
		if len(m.meals) > 0 && m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down":
		if len(m.meals) > 0 && m.cursor < len(m.meals)-1 {
			m.cursor++
		}
		return nil
	case "esc":
		m.cursor = -1
		return nil
	case "enter":
		// A highlighted card opens its detail; otherwise enter searches.
		if m.cursor >= 0 && m.cursor < len(m.meals) {
			return a.openDetail(m.meals[m.cursor].ID)
		}
		return a.startSearch()
	}

	// Typing belongs to the input and drops any card selection.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.cursor = -1
	m.refreshMatches()
	return cmd
}

// startSearch validates the input and fires the search request. Empty or
// whitespace-only input never reaches the network.
func (a *App) startSearch() tea.Cmd {
	m := &a.search

	ingredient := strings.TrimSpace(m.input.Value())
	if ingredient == "" {
		return a.pushToast("Please enter an ingredient", severityError)
	}

	m.searching = true
	m.searched = false
	m.meals = nil
	m.cursor = -1

	a.log.Debug("searching for %q", ingredient)
	return tea.Batch(m.spin.Tick, searchCmd(a.svc, ingredient))
}

// updateSearch applies search-page result messages.
func (a *App) updateSearch(msg tea.Msg) tea.Cmd {
	m := &a.search

	switch msg := msg.(type) {
	case ingredientsMsg:
		if msg.err != nil {
			// Silently logged; suggestions simply stay empty.
			a.log.Error("loading ingredients: %v", msg.err)
			return nil
		}
		m.vocab = msg.items
		a.log.Debug("ingredient vocabulary loaded (%d)", len(m.vocab))
		return nil

	case searchDoneMsg:
		m.searching = false
		if msg.err != nil {
			a.log.Error("search: %v", msg.err)
			return a.pushToast("Error searching recipes: "+msg.err.Error(), severityError)
		}
		m.meals = msg.meals
		m.searched = true
		if len(m.meals) > 0 {
			m.cursor = 0
		}
		return nil
	}
	return nil
}

func (a *App) viewSearch() string {
	m := &a.search
	s := a.styles

	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString("  " + s.Text.Render("Find recipes by ingredient") + "\n\n")
	b.WriteString("  " + m.input.View() + "\n")

	if len(m.matches) > 0 {
		b.WriteString("  " + s.Muted.Render("suggestions: "+strings.Join(m.matches, " · ")) + "\n")
	}
	b.WriteByte('\n')

	switch {
	case m.searching:
		b.WriteString("  " + m.spin.View() + s.Muted.Render(" Searching...") + "\n")

	case m.searched && len(m.meals) == 0:
		b.WriteString("  " + s.Muted.Render("No recipes found. Try a different ingredient.") + "\n")

	case len(m.meals) > 0:
		b.WriteString("  " + s.Success.Render(fmt.Sprintf("%d recipe(s) found", len(m.meals))) + "\n\n")
		for i, meal := range m.meals {
			line := meal.Name
			if i == m.cursor {
				b.WriteString(s.CardSelected.Render("▸ "+line) + "\n")
			} else {
				b.WriteString(s.Card.Render("  "+line) + "\n")
			}
		}
	}

	b.WriteByte('\n')
	b.WriteString("  " + s.Muted.Render("enter: search · ↑/↓: select · enter: view · tab: saved · ctrl+t: theme · ctrl+c: quit") + "\n")
	return b.String()
}
