package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dishly-app/dishly/internal/auth"
)

type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

// authModel is the login/signup dialog. A fresh instance is built on
// every open, so stale input or errors never leak between openings.
type authModel struct {
	mode authMode

	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focus    int

	errMsg string
	busy   bool
}

func newAuthModel() authModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "email> "
	email.CharLimit = 120
	email.Width = 34

	password := textinput.New()
	password.Placeholder = "minimum 6 characters"
	password.Prompt = "password> "
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 34

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.Prompt = "confirm> "
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 120
	confirm.Width = 34

	return authModel{
		mode:     modeLogin,
		email:    email,
		password: password,
		confirm:  confirm,
	}
}

// fieldCount is how many inputs the active tab shows.
func (m *authModel) fieldCount() int {
	if m.mode == modeSignup {
		return 3
	}
	return 2
}

// focusCurrent focuses the active field and blurs the rest.
func (m *authModel) focusCurrent() tea.Cmd {
	m.email.Blur()
	m.password.Blur()
	m.confirm.Blur()

	switch m.focus {
	case 0:
		return m.email.Focus()
	case 1:
		return m.password.Focus()
	default:
		return m.confirm.Focus()
	}
}

func (a *App) handleAuthKey(msg tea.KeyMsg) tea.Cmd {
	m := &a.authView

	switch msg.String() {
	case "esc":
		if !m.busy {
			a.overlay = overlayNone
		}
		return nil

	case "ctrl+s":
		// Switch between the Login and Sign Up tabs.
		if m.mode == modeLogin {
			m.mode = modeSignup
		} else {
			m.mode = modeLogin
		}
		m.errMsg = ""
		if m.focus >= m.fieldCount() {
			m.focus = m.fieldCount() - 1
		}
		return m.focusCurrent()

	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
		return m.focusCurrent()

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
		return m.focusCurrent()

	case "enter":
		return a.submitAuth()
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.email, cmd = m.email.Update(msg)
	case 1:
		m.password, cmd = m.password.Update(msg)
	default:
		m.confirm, cmd = m.confirm.Update(msg)
	}
	return cmd
}

// submitAuth runs the credential flow for the active tab. Errors come
// back as an inline message; the dialog never closes on failure.
func (a *App) submitAuth() tea.Cmd {
	m := &a.authView
	if m.busy {
		return nil
	}

	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	confirm := m.confirm.Value()
	mode := m.mode

	m.busy = true
	m.errMsg = ""

	session := a.session
	return func() tea.Msg {
		var err error
		if mode == modeLogin {
			err = session.Login(context.Background(), email, password)
		} else {
			err = session.Signup(context.Background(), email, password, confirm)
		}
		return authResultMsg{mode: mode, err: err}
	}
}

// updateAuthResult closes the dialog on success and shows the mapped
// provider message inline on failure.
func (a *App) updateAuthResult(msg authResultMsg) tea.Cmd {
	m := &a.authView
	m.busy = false

	if msg.err != nil {
		m.errMsg = auth.UserMessage(msg.err)
		return nil
	}

	a.overlay = overlayNone
	if msg.mode == modeLogin {
		return a.pushToast("Login successful!", severitySuccess)
	}
	return a.pushToast("Account created successfully!", severitySuccess)
}

func (a *App) viewAuth() string {
	m := &a.authView
	s := a.styles

	tabLogin := s.TabInactive.Render("Login")
	tabSignup := s.TabInactive.Render("Sign Up")
	if m.mode == modeLogin {
		tabLogin = s.TabActive.Render("Login")
	} else {
		tabSignup = s.TabActive.Render("Sign Up")
	}

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render("Authentication") + "\n\n")
	b.WriteString(tabLogin + s.Muted.Render("  ·  ") + tabSignup + "\n\n")

	b.WriteString(m.email.View() + "\n")
	b.WriteString(m.password.View() + "\n")
	if m.mode == modeSignup {
		b.WriteString(m.confirm.View() + "\n")
	}

	if m.errMsg != "" {
		b.WriteByte('\n')
		b.WriteString(s.InlineErr.Render(m.errMsg) + "\n")
	}

	b.WriteByte('\n')
	if m.busy {
		b.WriteString(s.Muted.Render("Working..."))
	} else {
		b.WriteString(s.Muted.Render("enter: submit · ctrl+s: switch tab · tab: next field · esc: close"))
	}

	return s.Modal.Render(b.String())
}
