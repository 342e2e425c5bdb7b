package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dishly-app/dishly/internal/domain"
)

// saveResetDelay keeps the "Saved!" confirmation visible before the save
// control re-enables.
const saveResetDelay = 2 * time.Second

// detailModel is the recipe detail modal. It serves both contexts: a
// fresh fetch from the search page, and a snapshot render from the saved
// page. The current recipe (save target) and the pending-delete target
// are independent fields.
type detailModel struct {
	// seq numbers detail fetches; a response with a stale seq is dropped.
	seq    int
	cancel context.CancelFunc

	loading  bool
	errMsg   string
	savedCtx bool

	recipe        *domain.Recipe      // current recipe, save target
	snapshot      *domain.SavedRecipe // saved-page snapshot
	pendingDelete string              // meal id targeted for deletion

	saving     bool
	savedFlash bool
	deleting   bool

	vp      viewport.Model
	vpReady bool

	width  int
	height int
}

func (m *detailModel) setSize(w, h int) {
	m.width = w
	m.height = h

	vw, vh := m.viewportSize()
	if !m.vpReady {
		m.vp = viewport.New(vw, vh)
		m.vpReady = true
	} else {
		m.vp.Width = vw
		m.vp.Height = vh
	}
}

func (m *detailModel) viewportSize() (int, int) {
	w := m.width - 12
	if w < 30 {
		w = 30
	}
	if w > 76 {
		w = 76
	}
	h := m.height - 10
	if h < 6 {
		h = 6
	}
	return w, h
}

// cancelFetch aborts any in-flight detail request.
func (m *detailModel) cancelFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *detailModel) updateComponents(msg tea.Msg) tea.Cmd {
	if !m.vpReady {
		return nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return cmd
}

// openDetail opens the modal with a loading placeholder and fetches the
// full recipe. A newer open supersedes and cancels any older fetch.
func (a *App) openDetail(mealID string) tea.Cmd {
	d := &a.detail
	d.cancelFetch()

	d.seq++
	d.loading = true
	d.errMsg = ""
	d.savedCtx = false
	d.recipe = nil
	d.snapshot = nil
	d.saving = false
	d.savedFlash = false
	d.setSize(a.width, a.height)

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	a.overlay = overlayDetail
	return fetchDetailCmd(ctx, a.svc, mealID, d.seq)
}

// openSavedDetail renders a saved recipe from the data already in the
// grid item — no re-fetch — and records it as the pending-delete target.
func (a *App) openSavedDetail(r domain.SavedRecipe) {
	d := &a.detail
	d.cancelFetch()

	d.loading = false
	d.errMsg = ""
	d.savedCtx = true
	d.recipe = nil
	d.snapshot = &r
	d.pendingDelete = r.MealID
	d.deleting = false
	d.setSize(a.width, a.height)
	d.vp.SetContent(a.renderSavedDetail(&r))
	d.vp.GotoTop()

	a.overlay = overlayDetail
}

func (a *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	d := &a.detail

	switch msg.String() {
	case "esc", "q":
		d.cancelFetch()
		a.overlay = overlayNone
		return nil
	case "s":
		if !d.savedCtx {
			return a.saveCurrentRecipe()
		}
		return nil
	case "d":
		if d.savedCtx && !d.deleting {
			a.overlay = overlayConfirmDelete
		}
		return nil
	}

	if d.vpReady {
		var cmd tea.Cmd
		d.vp, cmd = d.vp.Update(msg)
		return cmd
	}
	return nil
}

// saveCurrentRecipe submits the displayed recipe. It requires a current
// recipe and a session token; a missing token re-triggers the auth flow.
func (a *App) saveCurrentRecipe() tea.Cmd {
	d := &a.detail

	if d.recipe == nil {
		return a.pushToast("No recipe selected", severityError)
	}

	token := a.session.Token()
	if token == "" {
		toastCmd := a.pushToast("Please login to save recipes", severityError)
		return tea.Batch(toastCmd, a.handleAuth())
	}

	if d.saving {
		return nil
	}
	d.saving = true
	a.log.Debug("saving recipe %s", d.recipe.ID)
	return saveCmd(a.svc, token, d.recipe)
}

// updateDetail applies detail-modal result messages.
func (a *App) updateDetail(msg tea.Msg) tea.Cmd {
	d := &a.detail

	switch msg := msg.(type) {
	case detailDoneMsg:
		if msg.seq != d.seq {
			a.log.Debug("dropping stale detail response (seq %d, current %d)", msg.seq, d.seq)
			return nil
		}
		d.cancel = nil
		d.loading = false
		if msg.err != nil {
			// A closed modal cancels its fetch; nothing to show then.
			if a.overlay != overlayDetail {
				return nil
			}
			a.log.Error("recipe detail: %v", msg.err)
			d.errMsg = "Error loading recipe details"
			return nil
		}
		d.recipe = msg.recipe
		d.vp.SetContent(a.renderRecipeDetail(msg.recipe))
		d.vp.GotoTop()
		return nil

	case saveDoneMsg:
		if msg.err != nil {
			d.saving = false
			a.log.Error("save: %v", msg.err)
			return a.pushToast("Error saving recipe: "+strings.TrimPrefix(msg.err.Error(), "api: "), severityError)
		}
		// Keep the control disabled while the confirmation shows.
		d.savedFlash = true
		toastCmd := a.pushToast("Recipe saved successfully!", severitySuccess)
		resetCmd := tea.Tick(saveResetDelay, func(time.Time) tea.Msg { return saveResetMsg{} })
		return tea.Batch(toastCmd, resetCmd)

	case saveResetMsg:
		d.saving = false
		d.savedFlash = false
		return nil
	}
	return nil
}

// renderRecipeDetail builds the modal body for a freshly fetched recipe.
func (a *App) renderRecipeDetail(r *domain.Recipe) string {
	s := a.styles
	w, _ := a.detail.viewportSize()
	wrap := s.Text.Width(w)

	var b strings.Builder

	var badges []string
	if r.Category != "" {
		badges = append(badges, s.Badge.Render("["+r.Category+"]"))
	}
	if r.Area != "" {
		badges = append(badges, s.BadgeArea.Render("["+r.Area+"]"))
	}
	if len(badges) > 0 {
		b.WriteString(strings.Join(badges, " ") + "\n\n")
	}

	b.WriteString(s.ModalTitle.Render("Ingredients") + "\n")
	for _, ing := range r.Ingredients {
		measure := ing.Measure
		if measure != "" {
			measure += " "
		}
		b.WriteString(s.Muted.Render(measure) + s.Text.Render(ing.Name) + "\n")
	}
	b.WriteByte('\n')

	b.WriteString(s.ModalTitle.Render("Instructions") + "\n")
	b.WriteString(wrap.Render(r.Instructions) + "\n")

	if r.YouTube != "" {
		b.WriteByte('\n')
		b.WriteString(s.Link.Render("Video: "+r.YouTube) + "\n")
	}

	return b.String()
}

// renderSavedDetail builds the modal body from a saved-page snapshot.
func (a *App) renderSavedDetail(r *domain.SavedRecipe) string {
	s := a.styles
	w, _ := a.detail.viewportSize()
	wrap := s.Text.Width(w)

	var b strings.Builder

	var badges []string
	if r.Category != "" {
		badges = append(badges, s.Badge.Render("["+r.Category+"]"))
	}
	if r.Area != "" {
		badges = append(badges, s.BadgeArea.Render("["+r.Area+"]"))
	}
	if len(badges) > 0 {
		b.WriteString(strings.Join(badges, " ") + "\n\n")
	}

	b.WriteString(s.ModalTitle.Render("Ingredients") + "\n")
	for _, ing := range r.Ingredients {
		measure := ing.Measure
		if measure != "" {
			measure += " "
		}
		b.WriteString(s.Muted.Render(measure) + s.Text.Render(ing.Name) + "\n")
	}
	b.WriteByte('\n')

	b.WriteString(s.ModalTitle.Render("Instructions") + "\n")
	b.WriteString(wrap.Render(r.Instructions) + "\n\n")
	b.WriteString(s.Muted.Render("Saved on " + r.SavedOn()))

	return b.String()
}

func (a *App) viewDetail() string {
	d := &a.detail
	s := a.styles

	title := "Recipe"
	switch {
	case d.savedCtx && d.snapshot != nil:
		title = d.snapshot.Name
	case d.recipe != nil:
		title = d.recipe.Name
	}

	var body string
	switch {
	case d.loading:
		body = s.Muted.Render("Loading recipe details...")
	case d.errMsg != "":
		body = s.InlineErr.Render(d.errMsg)
	default:
		body = d.vp.View()
	}

	var footer string
	switch {
	case d.savedCtx && d.deleting:
		footer = s.Muted.Render("Deleting...")
	case d.savedCtx:
		footer = s.Muted.Render("↑/↓: scroll · d: delete · esc: close")
	case d.savedFlash:
		footer = s.Success.Render("✓ Saved!")
	case d.saving:
		footer = s.Muted.Render("Saving...")
	default:
		footer = s.Muted.Render("↑/↓: scroll · s: save recipe · esc: close")
	}

	content := s.ModalTitle.Render(title) + "\n\n" + body + "\n\n" + footer
	return s.Modal.Render(content)
}
