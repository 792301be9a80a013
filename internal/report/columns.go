package report

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/dom"
)

// ChooserID is the optional dropdown element mirroring the chooser entries.
const ChooserID = "column-chooser-dropdown"

// Column is one report column as currently rendered.
type Column struct {
	Field    string
	Label    string
	Visible  bool
	Position int
}

// decorations are header children that are not part of the label.
var decorations = dom.Any(
	dom.Class(ClassSortIcon),
	dom.Class(ClassSortIndex),
	dom.Class(ClassResizer),
)

// DeriveColumns reads the header row of the results table. The result is in
// display order and reflects any reorder or visibility change already applied
// to the document.
func DeriveColumns(doc *dom.Document) []Column {
	headers := fieldHeaders(doc)
	cols := make([]Column, 0, len(headers))
	for _, th := range headers {
		cols = append(cols, Column{
			Field:    dom.Attr(th, FieldAttr),
			Label:    headerLabel(th),
			Visible:  !dom.HasClass(th, ClassHidden),
			Position: dom.Index(th),
		})
	}
	return cols
}

// SetColumnVisible shows or hides the header and every body cell of field.
func SetColumnVisible(doc *dom.Document, field string, visible bool) {
	if field == "" {
		return
	}
	for _, n := range dom.Find(doc.Root(), dom.Class(ColumnClass(field))) {
		dom.ToggleClass(n, ClassHidden, !visible)
	}
}

// ChooserEntry is one checkbox in the column chooser.
type ChooserEntry struct {
	Field       string
	Label       string
	ColumnClass string
	Checked     bool
}

// ColumnChooser is the column visibility picker.
type ColumnChooser struct {
	entries []ChooserEntry
}

// Rebuild replaces the entries from the live header set. A document without
// field headers leaves the previous entries untouched.
func (c *ColumnChooser) Rebuild(doc *dom.Document) {
	cols := DeriveColumns(doc)
	if len(cols) == 0 {
		return
	}
	entries := make([]ChooserEntry, 0, len(cols))
	for _, col := range cols {
		entries = append(entries, ChooserEntry{
			Field:       col.Field,
			Label:       col.Label,
			ColumnClass: ColumnClass(col.Field),
			Checked:     col.Visible,
		})
	}
	c.entries = entries
	c.mirror(doc)
}

// Entries returns a copy of the current entries.
func (c *ColumnChooser) Entries() []ChooserEntry {
	out := make([]ChooserEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *ColumnChooser) mirror(doc *dom.Document) {
	box := doc.ByID(ChooserID)
	if box == nil {
		return
	}
	dom.Empty(box)
	for _, e := range c.entries {
		input := dom.NewElement("input")
		dom.SetAttr(input, "type", "checkbox")
		dom.SetAttr(input, "data-column", e.ColumnClass)
		if e.Checked {
			dom.SetAttr(input, "checked", "")
		}
		label := dom.NewElement("label")
		dom.Append(label, input)
		dom.Append(label, dom.NewText(e.Label))
		dom.Append(box, label)
	}
}

// HeaderLabel returns the visible label of th without its sort and resize
// decorations. Headers with no text fall back to their field.
func HeaderLabel(th *html.Node) string {
	return headerLabel(th)
}

func headerLabel(th *html.Node) string {
	label := strings.Join(strings.Fields(dom.TextExcluding(th, decorations)), " ")
	if label == "" {
		return dom.Attr(th, FieldAttr)
	}
	return label
}

func resultsTable(doc *dom.Document) *html.Node {
	if doc == nil {
		return nil
	}
	return dom.FindFirst(doc.Root(), dom.Class(ClassResultsTable))
}

// fieldHeaders returns every header cell declaring a field, in document order.
func fieldHeaders(doc *dom.Document) []*html.Node {
	table := resultsTable(doc)
	if table == nil {
		return nil
	}
	return dom.Find(table, dom.All(dom.Tag("th"), dom.WithAttr(FieldAttr)))
}

// allHeaders returns every header cell of the results table.
func allHeaders(doc *dom.Document) []*html.Node {
	table := resultsTable(doc)
	if table == nil {
		return nil
	}
	return dom.Find(table, dom.Tag("th"))
}

func headerRow(table *html.Node) *html.Node {
	thead := dom.FindFirst(table, dom.Tag("thead"))
	if thead == nil {
		return nil
	}
	return dom.FindFirst(thead, dom.Tag("tr"))
}

func bodyRows(table *html.Node) []*html.Node {
	if table == nil {
		return nil
	}
	var rows []*html.Node
	for _, tbody := range dom.Find(table, dom.Tag("tbody")) {
		rows = append(rows, dom.ChildElements(tbody, dom.Tag("tr"))...)
	}
	return rows
}

// HeaderByField returns the header cell declaring field, or nil.
func HeaderByField(doc *dom.Document, field string) *html.Node {
	for _, th := range fieldHeaders(doc) {
		if dom.Attr(th, FieldAttr) == field {
			return th
		}
	}
	return nil
}

// Headers returns every header cell of the results table, including those
// without a field, in document order.
func Headers(doc *dom.Document) []*html.Node {
	return allHeaders(doc)
}

// BodyRows returns the rows of the results table body in document order.
func BodyRows(doc *dom.Document) []*html.Node {
	return bodyRows(resultsTable(doc))
}
