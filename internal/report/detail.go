package report

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"
	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/dom"
)

// DetailField is one label/value line of a row detail.
type DetailField struct {
	Label string
	Value string
}

// RowDetail is the record extracted from one selected row, in header order.
type RowDetail struct {
	Fields []DetailField
}

// ExtractRow pairs each cell of tr with the field header at the same
// position. Pairing is positional, so any pending reorder must be applied
// first. The actions column is left out and a repeated label keeps its first
// position with the later value.
func ExtractRow(doc *dom.Document, tr *html.Node) RowDetail {
	headers := fieldHeaders(doc)
	var detail RowDetail
	seen := make(map[string]int)
	for idx, td := range dom.ChildElements(tr, dom.Tag("td")) {
		if idx >= len(headers) {
			break
		}
		label := headerLabel(headers[idx])
		if label == ActionsLabel {
			continue
		}
		value := strings.TrimSpace(dom.Text(td))
		if at, ok := seen[label]; ok {
			detail.Fields[at].Value = value
			continue
		}
		seen[label] = len(detail.Fields)
		detail.Fields = append(detail.Fields, DetailField{Label: label, Value: value})
	}
	return detail
}

// Value returns the value recorded under label.
func (r RowDetail) Value(label string) (string, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// JSON renders the record as an indented JSON object, keys in field order.
func (r RowDetail) JSON() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(jsonString(f.Label))
		buf.WriteByte(':')
		buf.Write(jsonString(f.Value))
	}
	buf.WriteByte('}')
	out := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{Width: 80, Indent: "  "})
	return strings.TrimRight(string(out), "\n")
}

func jsonString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// DetailPanel is the row detail side panel. It keeps the record of the
// selected row, never the row node itself.
type DetailPanel struct {
	open   bool
	detail RowDetail
}

// Open reports whether the panel is showing.
func (p *DetailPanel) Open() bool {
	return p.open
}

// Detail returns the record on display.
func (p *DetailPanel) Detail() RowDetail {
	return p.detail
}

// Show selects tr, extracts its record and opens the panel.
func (p *DetailPanel) Show(doc *dom.Document, tr *html.Node) {
	for _, row := range dom.Find(doc.Root(), dom.Class(ClassClickableRow)) {
		dom.RemoveClass(row, ClassSelected)
	}
	dom.AddClass(tr, ClassSelected)

	p.detail = ExtractRow(doc, tr)
	p.open = true
	p.render(doc)

	dom.AddClass(doc.ByID(DetailSidebarID), ClassActive)
	dom.AddClass(doc.ByID(OverlayID), ClassActive)
}

// Close hides the panel and undocks it. The caller persists the layout.
func (p *DetailPanel) Close(doc *dom.Document) {
	p.open = false
	p.detail = RowDetail{}
	dom.RemoveClass(doc.ByID(DetailSidebarID), ClassActive)
	dom.RemoveClass(doc.ByID(OverlayID), ClassActive)
	dom.RemoveClass(doc.Body(), ClassDocked)
}

func (p *DetailPanel) render(doc *dom.Document) {
	if section := doc.ByID(RecordSectionID); section != nil {
		dom.Empty(section)
		for _, f := range p.detail.Fields {
			label := dom.NewElement("span", "detail-label")
			dom.SetText(label, f.Label)
			value := dom.NewElement("span", "detail-value")
			dom.SetText(value, f.Value)
			line := dom.NewElement("div", "detail-row")
			dom.Append(line, label)
			dom.Append(line, value)
			dom.Append(section, line)
		}
	}
	if raw := doc.ByID(RawSectionID); raw != nil {
		dom.SetText(raw, p.detail.JSON())
	}
}

// IsDocked reports whether the layout is docked.
func IsDocked(doc *dom.Document) bool {
	return dom.HasClass(doc.Body(), ClassDocked)
}

// ToggleDock flips the docked layout and returns the new state.
func ToggleDock(doc *dom.Document) bool {
	docked := !IsDocked(doc)
	dom.ToggleClass(doc.Body(), ClassDocked, docked)
	dom.ToggleClass(doc.ByID(DockButtonID), ClassActive, docked)
	return docked
}
