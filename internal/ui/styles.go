package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dishly-app/dishly/internal/theme"
)

// Styles holds every lipgloss style the views use, derived from the active
// palette. Rebuilt wholesale on theme toggle.
type Styles struct {
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	ThemeGlyph  lipgloss.Style
	ThemeFlash  lipgloss.Style

	Text    lipgloss.Style
	Muted   lipgloss.Style
	ErrText lipgloss.Style
	Success lipgloss.Style
	Link    lipgloss.Style
	Prompt  lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Badge        lipgloss.Style
	BadgeArea    lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	InlineErr  lipgloss.Style
	ConfirmBox lipgloss.Style

	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style

	Spinner lipgloss.Style
}

// NewStyles builds the style set for a palette.
func NewStyles(p theme.Palette) Styles {
	s := Styles{}

	s.Header = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Muted).
		Padding(0, 1)
	s.HeaderTitle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Primary).
		Bold(true)
	s.TabActive = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Text).
		Bold(true).
		Underline(true)
	s.TabInactive = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Muted)
	s.ThemeGlyph = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Muted)
	s.ThemeFlash = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Primary).
		Bold(true)

	s.Text = lipgloss.NewStyle().Foreground(p.Text)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.ErrText = lipgloss.NewStyle().Foreground(p.Danger)
	s.Success = lipgloss.NewStyle().Foreground(p.Success)
	s.Link = lipgloss.NewStyle().Foreground(p.Primary).Underline(true)
	s.Prompt = lipgloss.NewStyle().Foreground(p.Primary)

	s.Card = lipgloss.NewStyle().
		Foreground(p.Text).
		PaddingLeft(2)
	s.CardSelected = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Highlight).
		Bold(true).
		PaddingLeft(2)
	s.Badge = lipgloss.NewStyle().
		Foreground(p.Primary)
	s.BadgeArea = lipgloss.NewStyle().
		Foreground(p.Success)

	s.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2)
	s.ModalTitle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	s.InlineErr = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)
	s.ConfirmBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Danger).
		Padding(1, 2)

	s.ToastInfo = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Foreground(p.Primary).
		Padding(0, 1)
	s.ToastSuccess = s.ToastInfo.
		BorderForeground(p.Success).
		Foreground(p.Success)
	s.ToastError = s.ToastInfo.
		BorderForeground(p.Danger).
		Foreground(p.Danger)

	s.Spinner = lipgloss.NewStyle().Foreground(p.Primary)

	return s
}
