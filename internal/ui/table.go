package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/dom"
	"github.com/five82/gobiview/internal/report"
)

// tableColumn is one visible header cell laid out on screen.
type tableColumn struct {
	th        *html.Node
	index     int // position among all header cells; pairs body cells
	field     string
	label     string
	indicator string
	grip      bool // header carries a resize handle
	x         int  // offset from the table's left edge
	width     int
}

func (c tableColumn) title() string {
	if c.indicator == "" {
		return c.label
	}
	return c.label + " " + c.indicator
}

// tableRow is one body row with its cells aligned to the visible columns.
type tableRow struct {
	tr    *html.Node
	cells []*html.Node // nil where the row is short
}

// tableLayout is the screen geometry of the results table, rebuilt from the
// document for every frame and every mouse event.
type tableLayout struct {
	columns []tableColumn
	rows    []tableRow
}

// buildTable lays out the results table of doc within width cells. Hidden
// columns are skipped and body cells pair with headers by position.
func buildTable(doc *dom.Document, width int) tableLayout {
	var l tableLayout
	for i, th := range report.Headers(doc) {
		if dom.HasClass(th, report.ClassHidden) {
			continue
		}
		col := tableColumn{
			th:        th,
			index:     i,
			field:     dom.Attr(th, report.FieldAttr),
			label:     report.HeaderLabel(th),
			indicator: sortIndicator(th),
			grip:      dom.FindFirst(th, dom.Class(report.ClassResizer)) != nil,
		}
		col.width = ansi.StringWidth(col.title())
		l.columns = append(l.columns, col)
	}

	for _, tr := range report.BodyRows(doc) {
		tds := dom.ChildElements(tr, dom.Tag("td"))
		row := tableRow{tr: tr, cells: make([]*html.Node, len(l.columns))}
		for ci := range l.columns {
			col := &l.columns[ci]
			if col.index >= len(tds) {
				continue
			}
			row.cells[ci] = tds[col.index]
			col.width = max(col.width, ansi.StringWidth(cellText(tds[col.index])))
		}
		l.rows = append(l.rows, row)
	}

	total := 0
	for ci := range l.columns {
		l.columns[ci].width = clamp(l.columns[ci].width, minColumnWidth, maxColumnWidth)
		total += l.columns[ci].width + columnGap
	}
	for total > width {
		widest := -1
		for ci, c := range l.columns {
			if c.width > minColumnWidth && (widest < 0 || c.width > l.columns[widest].width) {
				widest = ci
			}
		}
		if widest < 0 {
			break
		}
		l.columns[widest].width--
		total--
	}

	x := 0
	for ci := range l.columns {
		l.columns[ci].x = x
		x += l.columns[ci].width + columnGap
	}
	return l
}

// columnAt returns the column under offset x and whether x falls on its
// resize grip, or -1 when x is past the last column.
func (l tableLayout) columnAt(x int) (int, bool) {
	for i, c := range l.columns {
		if x >= c.x && x < c.x+c.width {
			return i, false
		}
		if x >= c.x+c.width && x < c.x+c.width+columnGap {
			return i, c.grip
		}
	}
	return -1, false
}

// indexOf returns the visible position of th, or -1.
func (l tableLayout) indexOf(th *html.Node) int {
	for i, c := range l.columns {
		if c.th == th {
			return i
		}
	}
	return -1
}

// clickTarget returns the node a click at offset x on row lands on. A cell
// holding a link or button yields that control.
func (l tableLayout) clickTarget(row, x int) *html.Node {
	r := l.rows[row]
	ci, _ := l.columnAt(x)
	if ci < 0 || r.cells[ci] == nil {
		return r.tr
	}
	cell := r.cells[ci]
	if ctl := dom.FindFirst(cell, dom.Any(dom.Tag("a"), dom.Tag("button"))); ctl != nil {
		return ctl
	}
	return cell
}

// sortIndicator reads the sort icon and index the sort state drew into th.
func sortIndicator(th *html.Node) string {
	icon := dom.FindFirst(th, dom.Class(report.ClassSortIcon))
	if icon == nil {
		return ""
	}
	glyph := "▼"
	if dom.HasClass(icon, report.ClassSortAsc) {
		glyph = "▲"
	}
	if idx := dom.FindFirst(th, dom.Class(report.ClassSortIndex)); idx != nil {
		glyph += collapseSpace(dom.Text(idx))
	}
	return glyph
}

func cellText(td *html.Node) string {
	if td == nil {
		return ""
	}
	return collapseSpace(dom.Text(td))
}

// renderTable draws the header line and the visible body rows. Dimmed
// tables are drawn under the detail overlay.
func (m Model) renderTable(l tableLayout, width, height int, dimmed bool) string {
	styles := m.theme.Styles()
	base := m.theme.SurfaceAlt
	bg := NewBgStyle(base)

	if len(l.columns) == 0 {
		return bg.Render("No results", styles.MutedText)
	}

	lines := make([]string, 0, height)
	lines = append(lines, m.renderHeaderLine(l, bg, styles, dimmed))

	end := min(len(l.rows), m.rowOffset+max(height-1, 0))
	for ri := m.rowOffset; ri < end; ri++ {
		lines = append(lines, m.renderRow(l, ri, width, styles, dimmed))
	}
	if len(l.rows) == 0 {
		lines = append(lines, bg.Render("No rows", styles.MutedText))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHeaderLine(l tableLayout, bg BgStyle, styles Styles, dimmed bool) string {
	var b strings.Builder
	for ci, c := range l.columns {
		switch {
		case dimmed:
			b.WriteString(bg.Cell(c.title(), styles.FaintText, c.width))
		case dom.HasClass(c.th, report.ClassDragging):
			b.WriteString(styles.Dragging.Render(fit(c.title(), c.width)))
		case dom.HasClass(c.th, report.ClassDragOver):
			b.WriteString(styles.DropTarget.Render(fit(c.title(), c.width)))
		case ci == m.activeCol:
			b.WriteString(bg.Cell(c.title(), styles.ColumnHeader.Underline(true), c.width))
		default:
			b.WriteString(bg.Cell(c.title(), styles.ColumnHeader, c.width))
		}
		grip := " "
		if c.grip {
			grip = "┆"
		}
		b.WriteString(bg.Render(grip, styles.FaintText))
	}
	return b.String()
}

func (m Model) renderRow(l tableLayout, ri, width int, styles Styles, dimmed bool) string {
	r := l.rows[ri]
	rowBg := m.theme.SurfaceAlt
	textStyle := styles.Text
	switch {
	case dimmed:
		textStyle = styles.FaintText
	case dom.HasClass(r.tr, report.ClassSelected):
		rowBg = m.theme.SelectionBg
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
	case ri == m.activeRow:
		rowBg = m.theme.FocusBg
	}
	bg := NewBgStyle(rowBg)

	var b strings.Builder
	for ci, c := range l.columns {
		b.WriteString(bg.Cell(cellText(r.cells[ci]), textStyle, c.width))
		b.WriteString(bg.Spaces(columnGap))
	}
	return bg.FillLine(b.String(), width)
}
