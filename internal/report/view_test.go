package report

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/gobiview/internal/dom"
	"github.com/five82/gobiview/internal/storage"
	"github.com/five82/gobiview/internal/testutil"
)

const location = "http://gobi.local/report?id=3"

func newView(t *testing.T) (*View, *fakeReplacer, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	replacer := &fakeReplacer{}
	logger := testutil.NewTestLogger(t)
	v := NewView(newDoc(t), location, NewSettingsStore(mem, logger), replacer, logger)
	v.Ready()
	return v, replacer, mem
}

func TestView_DragPersistsAcrossServerReplacement(t *testing.T) {
	v, _, mem := newView(t)
	doc := v.Document()

	v.DragStart(th(t, doc, "owner"))
	v.DragOver(th(t, doc, "name"))
	v.Drop(th(t, doc, "name"))
	v.DragEnd()
	require.Equal(t, []string{"owner", "name", "status"}, headerOrder(doc))

	raw, ok, err := mem.GetItem(SettingsKey)
	require.NoError(t, err)
	require.True(t, ok, "drop saves synchronously")
	assert.JSONEq(t, `{"columnOrder":["owner","name","status"],"hiddenColumns":[],"docked":false}`, raw)

	swapDefault(t, doc)
	require.Equal(t, []string{"name", "status", "owner"}, headerOrder(doc))

	v.ContentReplaced(ResultsContainerID)
	assert.Equal(t, []string{"owner", "name", "status"}, headerOrder(doc))
	requireAligned(t, doc)
}

func TestView_ContentReplacedIgnoresOtherTargets(t *testing.T) {
	v, _, _ := newView(t)
	doc := v.Document()
	v.DragStart(th(t, doc, "owner"))
	v.Drop(th(t, doc, "name"))
	v.DragEnd()

	swapDefault(t, doc)
	v.ContentReplaced("sidebar")
	assert.Equal(t, []string{"name", "status", "owner"}, headerOrder(doc))
}

func TestView_SynchronizeIsIdempotent(t *testing.T) {
	v, _, mem := newView(t)
	require.NoError(t, mem.SetItem(SettingsKey, `{"columnOrder":["status","owner","name"],"hiddenColumns":["owner"],"docked":true}`))
	v.HeaderClick(th(t, v.Document(), "name"), nil, true)
	v.HeaderClick(th(t, v.Document(), "status"), nil, true)

	swapDefault(t, v.Document())
	v.ContentReplaced(ResultsContainerID)
	once := v.Document().String()

	v.ContentReplaced(ResultsContainerID)
	assert.Equal(t, once, v.Document().String())
}

func TestView_SynchronizeMarksHeadersAndRebuildsChooser(t *testing.T) {
	v, _, mem := newView(t)
	require.NoError(t, mem.SetItem(SettingsKey, `{"columnOrder":["owner","status","name"],"hiddenColumns":["status"]}`))

	swapDefault(t, v.Document())
	v.ContentReplaced(ResultsContainerID)

	for _, h := range allHeaders(v.Document()) {
		assert.Equal(t, "true", dom.Attr(h, "draggable"))
	}

	// The mirror must already reflect the stored layout after a single pass.
	assert.Equal(t, []string{"col-owner=on", "col-status=off", "col-name=on"}, chooserMirror(v.Document()))

	entries := v.ChooserEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, ChooserEntry{Field: "owner", Label: "Owner", ColumnClass: "col-owner", Checked: true}, entries[0])
	assert.Equal(t, ChooserEntry{Field: "status", Label: "Status", ColumnClass: "col-status", Checked: false}, entries[1])
}

func TestView_SynchronizeChooserIsStableAcrossPasses(t *testing.T) {
	v, _, mem := newView(t)
	require.NoError(t, mem.SetItem(SettingsKey, `{"columnOrder":["owner","status","name"],"hiddenColumns":["status"]}`))

	swapDefault(t, v.Document())
	v.ContentReplaced(ResultsContainerID)
	once := chooserMirror(v.Document())
	labels := dom.Text(v.Document().ByID(ChooserID))

	v.ContentReplaced(ResultsContainerID)
	assert.Equal(t, once, chooserMirror(v.Document()))
	assert.Equal(t, labels, dom.Text(v.Document().ByID(ChooserID)))
}

func TestView_HeaderClickRequestsSortedTable(t *testing.T) {
	v, replacer, _ := newView(t)
	doc := v.Document()

	v.HeaderClick(th(t, doc, "status"), nil, true)
	v.HeaderClick(th(t, doc, "name"), nil, true)

	require.Len(t, replacer.requests, 2)
	last := replacer.requests[1]
	assert.Equal(t, ResultsContainerID, last.target)
	u, err := url.Parse(last.url)
	require.NoError(t, err)
	assert.Equal(t, []string{"status:ASC", "name:ASC"}, u.Query()["sort"])
	assert.Equal(t, "3", u.Query().Get("id"))

	assert.Equal(t, "2", dom.Text(dom.FindFirst(th(t, doc, "name"), dom.Class(ClassSortIndex))))

	swapDefault(t, doc)
	v.ContentReplaced(ResultsContainerID)
	assert.NotNil(t, dom.FindFirst(th(t, doc, "status"), dom.Class(ClassSortIcon)), "sort survives partial replacement")
	assert.Equal(t, SortSpec{{Field: "status", Dir: Asc}, {Field: "name", Dir: Asc}}, v.Sort())
}

func TestView_ResizeHandleClickDoesNotSort(t *testing.T) {
	v, replacer, _ := newView(t)
	header := th(t, v.Document(), "owner")
	handle := dom.FindFirst(header, dom.Class(ClassResizer))
	require.NotNil(t, handle)

	v.HeaderClick(header, handle, false)
	v.HeaderClick(header, handle, true)

	assert.Empty(t, v.Sort())
	assert.Empty(t, replacer.requests)
}

func TestView_HeaderWithoutFieldIsInertToSort(t *testing.T) {
	table := `<table class="results-table"><thead><tr><th data-field="name" class="col-name">Name</th><th class="col-actions">Actions</th></tr></thead><tbody></tbody></table>`
	doc, err := dom.ParseString(pageWith(table))
	require.NoError(t, err)
	replacer := &fakeReplacer{}
	v := NewView(doc, location, NewSettingsStore(storage.NewMemory(), nil), replacer, nil)
	v.Ready()

	actions := dom.Find(doc.Root(), dom.Tag("th"))[1]
	v.HeaderClick(actions, actions, false)
	assert.Empty(t, v.Sort())
	assert.Empty(t, replacer.requests)
	assert.Equal(t, "true", dom.Attr(actions, "draggable"), "still a drag participant")
}

func TestView_ReorderImmediatelyBeforeSelect(t *testing.T) {
	v, _, _ := newView(t)
	doc := v.Document()

	v.DragStart(th(t, doc, "owner"))
	v.Drop(th(t, doc, "name"))
	v.DragEnd()

	rows := BodyRows(doc)
	v.RowClick(rows[1], rows[1].FirstChild)

	detail, open := v.Detail()
	require.True(t, open)
	assert.Equal(t, []DetailField{
		{Label: "Owner", Value: "bob"},
		{Label: "Name", Value: "beta"},
		{Label: "Status", Value: "closed"},
	}, detail.Fields)
	assert.True(t, dom.HasClass(rows[1], ClassSelected))
}

func TestView_RowClickSelectionAndPanel(t *testing.T) {
	v, _, _ := newView(t)
	doc := v.Document()
	rows := BodyRows(doc)

	v.RowClick(rows[0], nil)
	v.RowClick(rows[1], nil)
	assert.False(t, dom.HasClass(rows[0], ClassSelected))
	assert.True(t, dom.HasClass(rows[1], ClassSelected))
	assert.True(t, dom.HasClass(doc.ByID(DetailSidebarID), ClassActive))
	assert.True(t, dom.HasClass(doc.ByID(OverlayID), ClassActive))

	link := dom.FindFirst(rows[2], dom.Tag("a"))
	v.RowClick(rows[2], link.FirstChild)
	detail, _ := v.Detail()
	value, _ := detail.Value("Name")
	assert.Equal(t, "beta", value, "clicks on links inside a row are ignored")
}

func TestView_DockAndClose(t *testing.T) {
	v, _, mem := newView(t)
	doc := v.Document()
	v.RowClick(BodyRows(doc)[0], nil)

	v.ToggleDock()
	assert.True(t, v.Docked())
	assert.True(t, dom.HasClass(doc.ByID(DockButtonID), ClassActive))
	stored, _, err := NewSettingsStore(mem, nil).Load()
	require.NoError(t, err)
	assert.True(t, stored.Docked)

	v.CloseDetail()
	_, open := v.Detail()
	assert.False(t, open)
	assert.False(t, v.Docked())
	assert.False(t, dom.HasClass(doc.ByID(DetailSidebarID), ClassActive))
	stored, _, err = NewSettingsStore(mem, nil).Load()
	require.NoError(t, err)
	assert.False(t, stored.Docked, "closing the panel persists the undocked layout")
}

func TestView_SetColumnVisibleSaves(t *testing.T) {
	v, _, mem := newView(t)
	v.SetColumnVisible("status", false)

	for _, n := range dom.Find(v.Document().Root(), dom.Class("col-status")) {
		assert.True(t, dom.HasClass(n, ClassHidden))
	}
	stored, ok, err := NewSettingsStore(mem, nil).Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"status"}, stored.HiddenColumns)

	v.SetColumnVisible("status", true)
	stored, _, _ = NewSettingsStore(mem, nil).Load()
	assert.Empty(t, stored.HiddenColumns)
}

func TestView_SaveFailureIsContained(t *testing.T) {
	doc := newDoc(t)
	v := NewView(doc, location, NewSettingsStore(failingStorage{storage.NewMemory()}, testutil.NewTestLogger(t)), nil, testutil.NewTestLogger(t))
	v.Ready()

	v.DragStart(th(t, doc, "owner"))
	v.Drop(th(t, doc, "name"))
	v.DragEnd()

	assert.Equal(t, []string{"owner", "name", "status"}, headerOrder(doc))
	assert.Error(t, v.LastError())

	v.HeaderClick(th(t, doc, "name"), nil, false)
	assert.Equal(t, SortSpec{{Field: "name", Dir: Asc}}, v.Sort(), "nil replacer is tolerated")
}

func TestView_ReloadResetsSession(t *testing.T) {
	v, _, _ := newView(t)
	v.HeaderClick(th(t, v.Document(), "name"), nil, false)
	v.RowClick(BodyRows(v.Document())[0], nil)

	v.Reload(newDoc(t), location+"&session=x")
	assert.Empty(t, v.Sort())
	_, open := v.Detail()
	assert.False(t, open)
	assert.Equal(t, location+"&session=x", v.Location())
}
