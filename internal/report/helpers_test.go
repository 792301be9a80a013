package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/dom"
	"github.com/five82/gobiview/internal/storage"
)

const defaultTable = `<table class="results-table">
<thead><tr>
<th data-field="name" class="col-name">Name<span class="resizer"></span></th>
<th data-field="status" class="col-status">Status<span class="resizer"></span></th>
<th data-field="owner" class="col-owner">Owner<span class="resizer"></span></th>
</tr></thead>
<tbody>
<tr class="clickable-row"><td class="col-name">alpha</td><td class="col-status">open</td><td class="col-owner">ann</td></tr>
<tr class="clickable-row"><td class="col-name">beta</td><td class="col-status">closed</td><td class="col-owner">bob</td></tr>
<tr class="clickable-row"><td class="col-name">gamma</td><td class="col-status">open</td><td class="col-owner"><a href="/u/cy">cy</a></td></tr>
</tbody>
</table>`

func pageWith(table string) string {
	return `<!doctype html><html><body>
<div class="column-chooser-wrapper"><div id="column-chooser-dropdown"></div></div>
<div id="results-table-container">` + table + `</div>
<div id="sidebar-overlay"></div>
<aside id="detail-sidebar">
<button id="dock-sidebar-btn">dock</button>
<div id="record-details-section"></div>
<pre id="raw-data-section"></pre>
</aside>
</body></html>`
}

func newDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(pageWith(defaultTable))
	require.NoError(t, err)
	return doc
}

// swapDefault simulates the server re-rendering the table in its own order.
func swapDefault(t *testing.T, doc *dom.Document) {
	t.Helper()
	require.NoError(t, doc.ReplaceInner(ResultsContainerID, defaultTable))
}

func headerOrder(doc *dom.Document) []string {
	var out []string
	for _, th := range fieldHeaders(doc) {
		out = append(out, dom.Attr(th, FieldAttr))
	}
	return out
}

func cellFields(tr *html.Node) []string {
	var out []string
	for _, td := range dom.ChildElements(tr, dom.Tag("td")) {
		for _, c := range dom.Classes(td) {
			if strings.HasPrefix(c, "col-") {
				out = append(out, strings.TrimPrefix(c, "col-"))
			}
		}
	}
	return out
}

func requireAligned(t *testing.T, doc *dom.Document) {
	t.Helper()
	want := headerOrder(doc)
	for i, tr := range BodyRows(doc) {
		require.Equal(t, want, cellFields(tr), "row %d out of step with headers", i)
	}
}

func th(t *testing.T, doc *dom.Document, field string) *html.Node {
	t.Helper()
	n := HeaderByField(doc, field)
	require.NotNil(t, n, "header %q", field)
	return n
}

type request struct {
	url    string
	target string
}

type fakeReplacer struct {
	requests []request
}

func (f *fakeReplacer) Request(url, target string) {
	f.requests = append(f.requests, request{url: url, target: target})
}

type failingStorage struct {
	storage.Storage
}

func (failingStorage) SetItem(string, string) error {
	return errors.New("disk full")
}

// chooserMirror reads the checkbox state rendered into the chooser dropdown
// as column=on|off, in display order.
func chooserMirror(doc *dom.Document) []string {
	var out []string
	for _, input := range dom.Find(doc.ByID(ChooserID), dom.Tag("input")) {
		state := "off"
		if _, ok := dom.LookupAttr(input, "checked"); ok {
			state = "on"
		}
		out = append(out, dom.Attr(input, "data-column")+"="+state)
	}
	return out
}
