package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gobiview/internal/report"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// chooserModal lists every field column with a checkbox. Toggling an entry
// shows or hides the column and saves the layout right away.
type chooserModal struct {
	view   *report.View
	cursor int
}

func newChooserModal(view *report.View) *chooserModal {
	return &chooserModal{view: view}
}

// Update implements Modal.
func (c *chooserModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	entries := c.view.ChooserEntries()

	switch {
	case key.Matches(keyMsg, keys.Escape), key.Matches(keyMsg, keys.Columns):
		return c, nil, true
	case key.Matches(keyMsg, keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if c.cursor < len(entries)-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Select):
		if c.cursor < len(entries) {
			e := entries[c.cursor]
			c.view.SetColumnVisible(e.Field, !e.Checked)
		}
	}
	return c, nil, false
}

// View implements Modal.
func (c *chooserModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	entries := c.view.ChooserEntries()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Columns"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(styles.MutedText.Render("No columns"))
	}
	for i, e := range entries {
		box := "[ ]"
		if e.Checked {
			box = "[x]"
		}
		line := box + " " + e.Label
		switch {
		case i == c.cursor:
			b.WriteString(styles.Selected.Render(fit(line, 30)))
		case e.Checked:
			b.WriteString(styles.Text.Render(line))
		default:
			b.WriteString(styles.MutedText.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space toggle · esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
