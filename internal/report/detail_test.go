package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/gobiview/internal/dom"
)

const actionsTable = `<table class="results-table">
<thead><tr>
<th data-field="id" class="col-id"></th>
<th data-field="name" class="col-name">Name</th>
<th data-field="note" class="col-note">Name</th>
<th data-field="actions" class="col-actions">Actions</th>
</tr></thead>
<tbody>
<tr class="clickable-row"><td class="col-id">7</td><td class="col-name">first</td><td class="col-note">a "quoted" <b>&lt;tag&gt;</b></td><td class="col-actions"><button>Edit</button></td></tr>
</tbody>
</table>`

func TestExtractRow_LabelsActionsAndDuplicates(t *testing.T) {
	doc, err := dom.ParseString(pageWith(actionsTable))
	require.NoError(t, err)

	detail := ExtractRow(doc, BodyRows(doc)[0])
	assert.Equal(t, []DetailField{
		{Label: "id", Value: "7"},
		{Label: "Name", Value: `a "quoted" <tag>`},
	}, detail.Fields, "empty label falls back to the field and a repeated label keeps the later value")
}

func TestRowDetail_JSONKeepsOrder(t *testing.T) {
	detail := RowDetail{Fields: []DetailField{
		{Label: "Zeta", Value: "1"},
		{Label: "Alpha", Value: "<b>"},
	}}
	assert.Equal(t, "{\n  \"Zeta\": \"1\",\n  \"Alpha\": \"<b>\"\n}", detail.JSON())
	assert.Equal(t, "{}", RowDetail{}.JSON())
}

func TestDetailPanel_RendersSections(t *testing.T) {
	doc := newDoc(t)
	var p DetailPanel
	p.Show(doc, BodyRows(doc)[0])

	lines := dom.Find(doc.ByID(RecordSectionID), dom.Class("detail-row"))
	require.Len(t, lines, 3)
	assert.Equal(t, "Status", dom.Text(dom.FindFirst(lines[1], dom.Class("detail-label"))))
	assert.Equal(t, "open", dom.Text(dom.FindFirst(lines[1], dom.Class("detail-value"))))
	assert.Equal(t, p.Detail().JSON(), dom.Text(doc.ByID(RawSectionID)))

	p.Show(doc, BodyRows(doc)[1])
	assert.Len(t, dom.Find(doc.ByID(RecordSectionID), dom.Class("detail-row")), 3, "section is rebuilt, not appended")
}

func TestToggleDock(t *testing.T) {
	doc := newDoc(t)
	assert.True(t, ToggleDock(doc))
	assert.True(t, IsDocked(doc))
	assert.False(t, ToggleDock(doc))
	assert.False(t, dom.HasClass(doc.ByID(DockButtonID), ClassActive))
}
