// Package ui implements the terminal interface: a search page, a saved
// recipes page, modal overlays for recipe detail and authentication, and
// a transient toast stack. All state lives in the Bubble Tea model;
// network calls run as commands and report back as messages.
package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dishly-app/dishly/internal/auth"
	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
	"github.com/dishly-app/dishly/internal/theme"
)

// themeFlashDuration is the one-shot glyph highlight after a toggle.
const themeFlashDuration = 500 * time.Millisecond

// Session is the slice of the auth manager the UI needs.
type Session interface {
	Token() string
	CurrentUser() *domain.User
	TokenLooksValid() bool
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, password, confirm string) error
	Logout() error
	Restore(ctx context.Context)
}

type pageID int

const (
	pageSearch pageID = iota
	pageSaved
)

type overlayID int

const (
	overlayNone overlayID = iota
	overlayDetail
	overlayAuth
	overlayConfirmLogout
	overlayConfirmDelete
)

// App is the root Bubble Tea model.
type App struct {
	svc     domain.RecipeService
	session Session
	themes  *theme.Manager
	log     *logger.Logger
	events  <-chan auth.Event

	styles Styles

	page    pageID
	overlay overlayID

	search   searchModel
	saved    savedModel
	detail   detailModel
	authView authModel

	toasts      []toast
	nextToastID int

	// authKnown flips after the first auth-state event, i.e. once the
	// asynchronous session restore has resolved either way.
	authKnown  bool
	flashTheme bool

	width  int
	height int
}

// New wires the root model. events is the session manager's auth-state
// broadcast.
func New(svc domain.RecipeService, session Session, events <-chan auth.Event, themes *theme.Manager, log *logger.Logger) *App {
	a := &App{
		svc:     svc,
		session: session,
		themes:  themes,
		log:     log.Named("ui"),
		events:  events,
		styles:  NewStyles(themes.Current()),
	}
	a.search = newSearchModel(a.styles)
	a.saved = savedModel{}
	return a
}

// Init starts the vocabulary load, the asynchronous session restore, and
// the auth-event pump.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.search.input.Focus(),
		loadIngredientsCmd(a.svc),
		restoreCmd(a.session),
		waitAuthEventCmd(a.events),
	)
}

// Update is the single owner of all client state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.setWidth(msg.Width)
		a.detail.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case toastExpireMsg:
		a.expireToast(msg.id)
		return a, nil

	case themeFlashEndMsg:
		a.flashTheme = false
		return a, nil

	case authEventMsg:
		cmd := a.handleAuthEvent(msg.event)
		return a, tea.Batch(cmd, waitAuthEventCmd(a.events))

	case ingredientsMsg, searchDoneMsg:
		return a, a.updateSearch(msg)

	case detailDoneMsg, saveDoneMsg, saveResetMsg:
		return a, a.updateDetail(msg)

	case savedListMsg, deleteDoneMsg, authGraceMsg:
		return a, a.updateSaved(msg)

	case authResultMsg:
		return a, a.updateAuthResult(msg)
	}

	// Everything else (blink ticks, spinner frames) goes to the page
	// components.
	var cmds []tea.Cmd
	cmds = append(cmds, a.search.updateComponents(msg))
	if a.overlay == overlayDetail {
		cmds = append(cmds, a.detail.updateComponents(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.detail.cancelFetch()
		return a, tea.Quit
	}

	// Overlays capture keys first: at most one modal is ever open.
	switch a.overlay {
	case overlayAuth:
		return a, a.handleAuthKey(msg)
	case overlayDetail:
		return a, a.handleDetailKey(msg)
	case overlayConfirmLogout:
		return a, a.handleConfirmLogoutKey(msg)
	case overlayConfirmDelete:
		return a, a.handleConfirmDeleteKey(msg)
	}

	switch msg.String() {
	case "tab":
		return a, a.switchPage()
	case "ctrl+t":
		return a, a.toggleTheme()
	case "ctrl+l":
		return a, a.handleAuth()
	case "ctrl+x":
		a.dismissToasts()
		return a, nil
	}

	switch a.page {
	case pageSearch:
		return a, a.handleSearchKey(msg)
	case pageSaved:
		return a, a.handleSavedKey(msg)
	}
	return a, nil
}

// switchPage toggles between the search and saved pages. Entering the
// saved page triggers its load-or-wait logic.
func (a *App) switchPage() tea.Cmd {
	if a.page == pageSearch {
		a.page = pageSaved
		return a.enterSaved()
	}
	a.page = pageSearch
	return a.search.input.Focus()
}

// toggleTheme flips the palette, persists the preference, and flashes the
// header glyph.
func (a *App) toggleTheme() tea.Cmd {
	palette := a.themes.Toggle()
	a.styles = NewStyles(palette)
	a.flashTheme = true
	return tea.Tick(themeFlashDuration, func(time.Time) tea.Msg {
		return themeFlashEndMsg{}
	})
}

// handleAuth is the header auth action: logout confirmation when a
// session exists, the login/signup dialog otherwise. The dialog state is
// rebuilt fresh on every open.
func (a *App) handleAuth() tea.Cmd {
	if a.session.Token() != "" {
		a.overlay = overlayConfirmLogout
		return nil
	}
	a.authView = newAuthModel()
	a.overlay = overlayAuth
	return a.authView.focusCurrent()
}

func (a *App) handleConfirmLogoutKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		a.overlay = overlayNone
		return a.logout()
	case "n", "N", "esc":
		a.overlay = overlayNone
	}
	return nil
}

func (a *App) logout() tea.Cmd {
	if err := a.session.Logout(); err != nil {
		a.log.Error("logout: %v", err)
		return a.pushToast("Error logging out: "+err.Error(), severityError)
	}

	cmd := a.pushToast("Logged out successfully", severitySuccess)
	// Redirect home when signing out from the saved page.
	if a.page == pageSaved {
		a.page = pageSearch
		return tea.Batch(cmd, a.search.input.Focus())
	}
	return cmd
}

// handleAuthEvent reacts to the typed auth-state broadcast. The saved
// page reloads on sign-in and drops to the auth-required view on
// sign-out, without polling.
func (a *App) handleAuthEvent(ev auth.Event) tea.Cmd {
	a.authKnown = true
	a.log.Debug("auth event: %s", ev.Kind)

	switch ev.Kind {
	case auth.EventAuthenticated:
		if a.page == pageSaved {
			return a.loadSaved()
		}
	case auth.EventSignedOut:
		if a.page == pageSaved {
			a.saved.authRequired = true
			a.saved.loading = false
			a.saved.awaitingAuth = false
		}
	}
	return nil
}

// View renders header, toasts, the active page, and any overlay.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteByte('\n')

	if toasts := a.renderToasts(); toasts != "" {
		b.WriteString(toasts)
		b.WriteByte('\n')
	}

	switch a.overlay {
	case overlayDetail:
		b.WriteString(a.placeOverlay(a.viewDetail()))
	case overlayAuth:
		b.WriteString(a.placeOverlay(a.viewAuth()))
	case overlayConfirmLogout:
		b.WriteString(a.placeOverlay(a.viewConfirm("Are you sure you want to logout?")))
	case overlayConfirmDelete:
		b.WriteString(a.placeOverlay(a.viewConfirm("Are you sure you want to delete this recipe?")))
	default:
		switch a.page {
		case pageSearch:
			b.WriteString(a.viewSearch())
		case pageSaved:
			b.WriteString(a.viewSaved())
		}
	}

	return b.String()
}

func (a *App) renderHeader() string {
	s := a.styles

	title := s.HeaderTitle.Render(" Dishly ")

	tabSearch := s.TabInactive.Render("Search")
	tabSaved := s.TabInactive.Render("Saved")
	if a.page == pageSearch {
		tabSearch = s.TabActive.Render("Search")
	} else {
		tabSaved = s.TabActive.Render("Saved")
	}

	account := "not signed in · ctrl+l to login"
	if u := a.session.CurrentUser(); u != nil {
		account = u.Email
	} else if a.session.Token() != "" {
		account = "signed in"
		if !a.session.TokenLooksValid() {
			account = "session expired · ctrl+l to login"
		}
	}

	glyphStyle := s.ThemeGlyph
	if a.flashTheme {
		glyphStyle = s.ThemeFlash
	}
	glyph := glyphStyle.Render(" " + a.themes.Current().Name.Glyph() + " ")

	left := title + "  " + tabSearch + s.Header.Render(" · ") + tabSaved
	right := s.Header.Render(account) + glyph

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + s.Header.Render(strings.Repeat(" ", gap)) + right
}

// placeOverlay centers a modal box in the content area.
func (a *App) placeOverlay(content string) string {
	h := a.height - 2
	if h < lipgloss.Height(content) {
		h = lipgloss.Height(content)
	}
	if a.width <= 0 {
		return content
	}
	return lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) viewConfirm(question string) string {
	body := a.styles.Text.Render(question) + "\n\n" +
		a.styles.Muted.Render("y: yes · n: no")
	return a.styles.ConfirmBox.Render(body)
}
