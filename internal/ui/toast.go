package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastTTL is the notification auto-dismiss delay.
const toastTTL = 3 * time.Second

type toastSeverity int

const (
	severityInfo toastSeverity = iota
	severitySuccess
	severityError
)

// toast is one transient notification in the stack.
type toast struct {
	id   int
	text string
	sev  toastSeverity
}

type toastExpireMsg struct{ id int }

// pushToast appends a notification and schedules its expiry.
func (a *App) pushToast(text string, sev toastSeverity) tea.Cmd {
	a.nextToastID++
	id := a.nextToastID
	a.toasts = append(a.toasts, toast{id: id, text: text, sev: sev})

	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
}

// expireToast removes a notification once its lifetime ends.
func (a *App) expireToast(id int) {
	for i, t := range a.toasts {
		if t.id == id {
			a.toasts = append(a.toasts[:i], a.toasts[i+1:]...)
			return
		}
	}
}

// dismissToasts clears the whole stack (manual dismissal).
func (a *App) dismissToasts() {
	a.toasts = nil
}

// renderToasts draws the stack right-aligned under the header.
func (a *App) renderToasts() string {
	if len(a.toasts) == 0 {
		return ""
	}

	var rows []string
	for _, t := range a.toasts {
		style := a.styles.ToastInfo
		switch t.sev {
		case severitySuccess:
			style = a.styles.ToastSuccess
		case severityError:
			style = a.styles.ToastError
		}
		rows = append(rows, style.Render(t.text))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rows...)
	if a.width > 0 {
		return lipgloss.PlaceHorizontal(a.width, lipgloss.Right, stack)
	}
	return stack
}
