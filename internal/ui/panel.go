package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gobiview/internal/report"
)

// panelWidth is the width of the detail panel box at the current size.
func (m Model) panelWidth() int {
	w := max(m.width*panelPercent/100, panelMinWidth)
	return min(w, max(m.width-minColumnWidth*3, 0))
}

// tableWidth is the width left for the table box.
func (m Model) tableWidth() int {
	if _, open := m.view.Detail(); open {
		return m.width - m.panelWidth()
	}
	return m.width
}

// contentHeight is the height below the header and command bar.
func (m Model) contentHeight() int {
	return max(m.height-chromeRows, 0)
}

// syncPanel resizes the panel viewport and refreshes its content from the
// open record.
func (m *Model) syncPanel() {
	detail, open := m.view.Detail()
	if !open {
		return
	}
	w := max(m.panelWidth()-2, 0)
	h := max(m.contentHeight()-2, 0)
	m.panel.Width = w
	m.panel.Height = h
	m.panel.SetContent(m.panelContent(detail, w))
}

// panelContent lists the record as label/value pairs followed by the raw
// JSON dump. A folded raw section shows only its title.
func (m Model) panelContent(detail report.RowDetail, width int) string {
	styles := m.theme.Styles()
	wrap := lipgloss.NewStyle().Width(max(width-1, 1))

	var b strings.Builder
	for _, f := range detail.Fields {
		b.WriteString(styles.AccentText.Bold(true).Render(f.Label))
		b.WriteString("\n")
		value := f.Value
		if value == "" {
			b.WriteString(styles.FaintText.Render("-"))
		} else {
			b.WriteString(wrap.Inherit(styles.Text).Render(value))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.rawCollapsed {
		b.WriteString(styles.MutedText.Bold(true).Render("▸ Raw"))
		return b.String()
	}
	b.WriteString(styles.MutedText.Bold(true).Render("▾ Raw"))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(styles.InfoText).Render(detail.JSON()))
	return b.String()
}

// renderPanel draws the detail panel box.
func (m Model) renderPanel(width, height int) string {
	title := "Record Details"
	if m.view.Docked() {
		title += " · docked"
	}
	return m.renderTitledBox(title, m.panel.View(), width, height, !m.view.Docked())
}
