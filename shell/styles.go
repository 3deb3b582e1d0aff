// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Frame       lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Muted       lipgloss.Style
	Label       lipgloss.Style
	Cursor      lipgloss.Style
	Selected    lipgloss.Style

	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Help    lipgloss.Style
}

func DefaultStyles() Styles {
	button := lipgloss.NewStyle().Padding(0, 2).Bold(true)

	return Styles{
		Frame:       lipgloss.NewStyle().Padding(1, 2),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Label:       lipgloss.NewStyle().Bold(true),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true),

		Button:         button.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3C3C3C")),
		ButtonFocused:  button.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#5B8DEF")),
		ButtonDisabled: button.Foreground(lipgloss.Color("#666666")).Background(lipgloss.Color("#2A2A2A")),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1),
	}
}
