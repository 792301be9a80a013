package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gobiview/internal/report"
	"github.com/five82/gobiview/internal/state"
	"github.com/five82/gobiview/internal/storage"
)

const testLocation = "http://gobi.local/report?id=3&session=s1"

type testRow struct{ name, status, owner string }

var defaultRows = []testRow{
	{"alpha", "open", "ann"},
	{"beta", "closed", "bob"},
	{"gamma", "open", `<a href="/u/cy">cy</a>`},
}

// tableMarkup renders the results table partial the server returns.
func tableMarkup(rows []testRow) string {
	var b strings.Builder
	b.WriteString(`<table class="results-table"><thead><tr>`)
	b.WriteString(`<th data-field="name" class="col-name">Name<span class="resizer"></span></th>`)
	b.WriteString(`<th data-field="status" class="col-status">Status<span class="resizer"></span></th>`)
	b.WriteString(`<th data-field="owner" class="col-owner">Owner<span class="resizer"></span></th>`)
	b.WriteString(`</tr></thead><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(&b, `<tr class="clickable-row"><td class="col-name">%s</td><td class="col-status">%s</td><td class="col-owner">%s</td></tr>`,
			r.name, r.status, r.owner)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func pageMarkup(rows []testRow) string {
	return `<html><body>
<div id="column-chooser-dropdown"></div>
<div id="results-table-container">` + tableMarkup(rows) + `</div>
<div id="sidebar-overlay"></div>
<div id="detail-sidebar"><button id="dock-sidebar-btn"></button>
<div id="record-details-section"></div><pre id="raw-data-section"></pre></div>
</body></html>`
}

// fakeClient serves the default page and a partial per sort query.
type fakeClient struct {
	fragments map[string][]testRow // keyed by the joined sort values
	requests  []string
}

func (f *fakeClient) FetchPage(_ context.Context, _ string) (string, error) {
	return pageMarkup(defaultRows), nil
}

func (f *fakeClient) FetchFragment(_ context.Context, ref, _ string) (string, error) {
	f.requests = append(f.requests, ref)
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	rows, ok := f.fragments[strings.Join(u.Query()["sort"], ",")]
	if !ok {
		rows = defaultRows
	}
	return tableMarkup(rows), nil
}

type harness struct {
	client    *fakeClient
	mem       *storage.Memory
	snapshots *state.Store
}

// newLoadedModel returns a sized model with the default page loaded.
func newLoadedModel(t *testing.T) (Model, *harness) {
	t.Helper()
	h := &harness{
		client:    &fakeClient{fragments: map[string][]testRow{}},
		mem:       storage.NewMemory(),
		snapshots: &state.Store{},
	}
	m := New(Options{
		Client:    h.client,
		Snapshots: h.snapshots,
		Settings:  report.NewSettingsStore(h.mem, nil),
		Storage:   h.mem,
		Location:  testLocation,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m = update(t, m, pageMsg{location: testLocation, markup: pageMarkup(defaultRows)})
	if !m.loaded {
		t.Fatalf("page not loaded: %v", m.loadErr)
	}
	return m, h
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func press(x, y int, ctrl bool) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Ctrl: ctrl, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

// headerX returns a screen column inside the label of the visible column.
func headerX(t *testing.T, m Model, field string) int {
	t.Helper()
	for _, c := range m.layout().columns {
		if c.field == field {
			return tableOriginX + c.x + 1
		}
	}
	t.Fatalf("column %q not visible", field)
	return 0
}

func fieldOrder(m Model) []string {
	var out []string
	for _, c := range m.layout().columns {
		out = append(out, c.field)
	}
	return out
}

func firstCells(m Model) []string {
	var out []string
	for _, r := range m.layout().rows {
		out = append(out, cellText(r.cells[0]))
	}
	return out
}

// runSwap executes a fetch command and feeds its result back.
func runSwap(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a fetch command")
	}
	got := cmd()
	msg, ok := got.(swapMsg)
	if !ok {
		t.Fatalf("command produced %T, want swapMsg", got)
	}
	return update(t, m, msg)
}
