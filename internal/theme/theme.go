// Package theme defines the light and dark display palettes and the
// manager that toggles and persists the preference.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
	"github.com/dishly-app/dishly/internal/store"
)

// Variant is the persisted preference value.
type Variant string

const (
	VariantLight Variant = "light"
	VariantDark  Variant = "dark"
)

// Palette is the set of color roles the UI styles are built from.
type Palette struct {
	Name Variant

	Text      lipgloss.Color // primary text
	Muted     lipgloss.Color // hints, metadata
	Primary   lipgloss.Color // accents, active tab, links
	Success   lipgloss.Color // success toasts, badges
	Danger    lipgloss.Color // errors, delete actions
	Border    lipgloss.Color // modal and card borders
	Surface   lipgloss.Color // header/status bar background
	Highlight lipgloss.Color // selected card background
}

// Light is the default palette for first-time visitors.
func Light() Palette {
	return Palette{
		Name:      VariantLight,
		Text:      lipgloss.Color("#27272a"),
		Muted:     lipgloss.Color("#71717a"),
		Primary:   lipgloss.Color("#2563eb"),
		Success:   lipgloss.Color("#16a34a"),
		Danger:    lipgloss.Color("#dc2626"),
		Border:    lipgloss.Color("#d4d4d8"),
		Surface:   lipgloss.Color("#e4e4e7"),
		Highlight: lipgloss.Color("#dbeafe"),
	}
}

// Dark mirrors the light palette in the soft tones the terminal shows well.
func Dark() Palette {
	return Palette{
		Name:      VariantDark,
		Text:      lipgloss.Color("#d4d4d8"),
		Muted:     lipgloss.Color("#71717a"),
		Primary:   lipgloss.Color("#93c5fd"),
		Success:   lipgloss.Color("#bbf7d0"),
		Danger:    lipgloss.Color("#fca5a5"),
		Border:    lipgloss.Color("#52525b"),
		Surface:   lipgloss.Color("#27272a"),
		Highlight: lipgloss.Color("#1e3a5f"),
	}
}

// Glyph returns the header icon for the variant: the sun in dark mode and
// the moon in light mode, i.e. what toggling switches to.
func (v Variant) Glyph() string {
	if v == VariantDark {
		return "☀"
	}
	return "☾"
}

// Manager applies and persists the theme preference. The write is
// unconditional and synchronous on every toggle.
type Manager struct {
	local   domain.LocalStore
	current Palette
	log     *logger.Logger
}

// NewManager reads the persisted preference, defaulting to light on first
// visit or an unrecognized value.
func NewManager(local domain.LocalStore, log *logger.Logger) *Manager {
	m := &Manager{local: local, log: log}
	if Variant(local.Get(store.KeyTheme)) == VariantDark {
		m.current = Dark()
	} else {
		m.current = Light()
	}
	return m
}

// Current returns the active palette.
func (m *Manager) Current() Palette { return m.current }

// Toggle flips between light and dark, persists the new preference, and
// returns the new palette. Toggling twice restores the original value.
func (m *Manager) Toggle() Palette {
	if m.current.Name == VariantLight {
		m.current = Dark()
	} else {
		m.current = Light()
	}

	if err := m.local.Set(store.KeyTheme, string(m.current.Name)); err != nil {
		m.log.Warn("persisting theme preference: %v", err)
	}
	m.log.Debug("theme set to %s", m.current.Name)
	return m.current
}
