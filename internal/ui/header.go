package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderHeader renders the status line: connection state, report location,
// current sort and row count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("gobiview", styles.Logo)}
	parts = append(parts, m.connectionStatus(styles, bg))

	if m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.Render("Report:", styles.MutedText)+bg.Space()+
				bg.Render(truncateMiddle(m.view.Location(), 48), styles.Text))
	}

	if spec := m.view.Sort(); len(spec) > 0 {
		keys := make([]string, 0, len(spec))
		for _, k := range spec {
			keys = append(keys, k.String())
		}
		parts = append(parts,
			bg.Render("Sort:", styles.MutedText)+bg.Space()+
				bg.Render(strings.Join(keys, ","), styles.InfoText))
	}

	if m.loaded {
		parts = append(parts,
			bg.Render("Rows:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", m.rowCount()), styles.Text))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	if err := m.view.LastError(); err != nil {
		parts = append(parts, bg.Render("Layout not saved", styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(singleLine(strings.Join(parts, sep), m.width-2)))
}

// connectionStatus summarizes the page load and the poller's last result.
func (m Model) connectionStatus(styles Styles, bg BgStyle) string {
	switch {
	case m.loadErr != nil:
		return bg.Render("● "+classifyConnectionError(m.loadErr), styles.DangerText)
	case !m.loaded:
		return bg.Render("Loading report...", styles.WarningText.Bold(true))
	case m.snapshot.IsOffline():
		return bg.Render("● OFFLINE", styles.DangerText)
	case m.snapshot.LastError != nil:
		return bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.WarningText)
	case m.config != nil && m.config.PollInterval() == 0:
		return bg.Render("● STATIC", styles.MutedText)
	default:
		return bg.Render("● LIVE", styles.SuccessText)
	}
}

// classifyConnectionError maps transport errors to a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "returned status"):
		return "SERVER ERROR"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders key hints, or the drop hints while a column is
// grabbed. A pending notice replaces the hints until the next key.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)
	colon := bg.Sep(":")

	var segments []string
	switch {
	case m.notice != "":
		segments = append(segments, bg.Render(m.notice, styles.WarningText))
	case m.grabbing:
		for _, c := range [][2]string{{"←/→", "Drop target"}, {"enter", "Drop"}, {"esc", "Cancel"}} {
			segments = append(segments, bg.Render(c[0], styles.AccentText)+colon+bg.Render(c[1], styles.MutedText))
		}
	default:
		m.help.Styles.ShortKey = styles.AccentText
		m.help.Styles.ShortDesc = styles.MutedText
		m.help.Styles.ShortSeparator = styles.FaintText
		m.help.ShortSeparator = "  "
		m.help.Width = max(m.width-20, 0)
		segments = append(segments, m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(singleLine(strings.Join(segments, sep), m.width-2))
}

// singleLine cuts a rendered bar to width so it never wraps and shifts the
// rows below it.
func singleLine(s string, width int) string {
	return ansi.Truncate(s, max(width, 0), "…")
}
