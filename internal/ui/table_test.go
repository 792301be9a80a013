package ui

import (
	"testing"

	"github.com/five82/gobiview/internal/dom"
)

const layoutMarkup = `<div id="results-table-container"><table class="results-table">
<thead><tr>
<th data-field="name" class="col-name">Name<span class="resizer"></span></th>
<th data-field="status" class="col-status hidden-col">Status<span class="resizer"></span></th>
<th data-field="owner" class="col-owner">Owner</th>
<th>Actions</th>
</tr></thead>
<tbody>
<tr class="clickable-row"><td class="col-name">alpha</td><td class="col-status hidden-col">open</td><td class="col-owner">ann</td><td><a href="/x">x</a></td></tr>
<tr class="clickable-row"><td class="col-name">b</td></tr>
</tbody></table></div>`

func parseLayout(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(layoutMarkup)
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

func TestBuildTable_SkipsHiddenAndPairsByPosition(t *testing.T) {
	l := buildTable(parseLayout(t), 200)

	if len(l.columns) != 3 {
		t.Fatalf("visible columns = %d, want 3", len(l.columns))
	}
	wants := []struct {
		label string
		index int
		x     int
		width int
		grip  bool
	}{
		{"Name", 0, 0, 5, true},
		{"Owner", 2, 6, 5, false},
		{"Actions", 3, 12, 7, false},
	}
	for i, w := range wants {
		c := l.columns[i]
		if c.label != w.label || c.index != w.index || c.x != w.x || c.width != w.width || c.grip != w.grip {
			t.Fatalf("column %d = %+v, want %+v", i, c, w)
		}
	}

	if got := cellText(l.rows[0].cells[1]); got != "ann" {
		t.Fatalf("owner cell = %q, want ann", got)
	}
	if short := l.rows[1]; short.cells[0] == nil || short.cells[1] != nil || short.cells[2] != nil {
		t.Fatalf("short row cells = %v, want only the first", short.cells)
	}
}

func TestBuildTable_ShrinksToWidth(t *testing.T) {
	l := buildTable(parseLayout(t), 12)
	for _, c := range l.columns {
		if c.width != minColumnWidth {
			t.Fatalf("column %q width = %d, want %d", c.label, c.width, minColumnWidth)
		}
	}
}

func TestColumnAt(t *testing.T) {
	l := buildTable(parseLayout(t), 200)
	tests := []struct {
		x        int
		wantCol  int
		wantGrip bool
	}{
		{0, 0, false},
		{4, 0, false},
		{5, 0, true},
		{6, 1, false},
		{11, 1, false},
		{12, 2, false},
		{100, -1, false},
	}
	for _, tt := range tests {
		col, grip := l.columnAt(tt.x)
		if col != tt.wantCol || grip != tt.wantGrip {
			t.Fatalf("columnAt(%d) = (%d, %v), want (%d, %v)", tt.x, col, grip, tt.wantCol, tt.wantGrip)
		}
	}
}

func TestClickTarget(t *testing.T) {
	l := buildTable(parseLayout(t), 200)

	if got := l.clickTarget(0, 13); got == nil || got.Data != "a" {
		t.Fatalf("click on the actions cell = %v, want the link", got)
	}
	if got := l.clickTarget(0, 1); got != l.rows[0].cells[0] {
		t.Fatalf("click on a plain cell did not return the cell")
	}
	if got := l.clickTarget(1, 7); got != l.rows[1].tr {
		t.Fatalf("click past a short row's cells did not return the row")
	}
}

func TestSortIndicator(t *testing.T) {
	doc, err := dom.ParseString(`<table><tr>
<th id="a">A<span class="sort-icon sort-asc"></span><span class="sort-index"> 2 </span></th>
<th id="b">B<span class="sort-icon sort-desc"></span></th>
<th id="c">C</th></tr></table>`)
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	for id, want := range map[string]string{"a": "▲2", "b": "▼", "c": ""} {
		if got := sortIndicator(doc.ByID(id)); got != want {
			t.Fatalf("sortIndicator(#%s) = %q, want %q", id, got, want)
		}
	}
}
