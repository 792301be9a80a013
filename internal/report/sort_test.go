package report

import (
	"math/rand"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/gobiview/internal/dom"
)

func TestClick_AlternatesOnSingleField(t *testing.T) {
	var s SortState
	want := []Direction{Asc, Desc, Asc, Desc, Asc}
	for i, dir := range want {
		s.Click("status")
		assert.Equal(t, SortSpec{{Field: "status", Dir: dir}}, s.Spec(), "click %d", i+1)
	}
}

func TestClick_CollapsesMultiSort(t *testing.T) {
	var s SortState
	s.CtrlClick("status")
	s.CtrlClick("name")
	s.Click("status")
	assert.Equal(t, SortSpec{{Field: "status", Dir: Asc}}, s.Spec(), "plain click on a multi-sort member restarts at ASC")

	s.Click("owner")
	assert.Equal(t, SortSpec{{Field: "owner", Dir: Asc}}, s.Spec())
}

func TestCtrlClick_FlipsInPlaceAndAppends(t *testing.T) {
	var s SortState
	s.CtrlClick("status")
	s.CtrlClick("name")
	s.CtrlClick("status")
	assert.Equal(t, SortSpec{
		{Field: "status", Dir: Desc},
		{Field: "name", Dir: Asc},
	}, s.Spec())
}

func TestCtrlClick_RandomSequencesKeepFieldsUnique(t *testing.T) {
	fields := []string{"name", "status", "owner", "region"}
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		var s SortState
		for step := 0; step < 30; step++ {
			field := fields[rng.Intn(len(fields))]
			before := s.Spec()
			s.CtrlClick(field)
			after := s.Spec()

			seen := map[string]bool{}
			for _, k := range after {
				require.False(t, seen[k.Field], "field %q repeated in %v", k.Field, after)
				seen[k.Field] = true
			}

			if idx := before.Index(field); idx >= 0 {
				require.Len(t, after, len(before))
				require.Equal(t, idx, after.Index(field), "flip must not move the key")
				require.Equal(t, before[idx].Dir.Flip(), after[idx].Dir)
			} else {
				require.Len(t, after, len(before)+1)
				require.Equal(t, SortKey{Field: field, Dir: Asc}, after[len(after)-1])
			}
		}
	}
}

func TestSpec_ReturnsCopy(t *testing.T) {
	var s SortState
	s.Click("name")
	spec := s.Spec()
	spec[0].Dir = Desc
	assert.Equal(t, Asc, s.Spec()[0].Dir)
}

func TestEncodeSortQuery_CtrlClickScenario(t *testing.T) {
	var s SortState
	s.CtrlClick("status")
	s.CtrlClick("name")
	require.Equal(t, SortSpec{{Field: "status", Dir: Asc}, {Field: "name", Dir: Asc}}, s.Spec())

	out, err := EncodeSortQuery("http://gobi.local/report?id=7&sort=owner:DESC&session=abc", s.Spec())
	require.NoError(t, err)

	u, err := url.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "/report", u.Path)
	assert.Equal(t, []string{"status:ASC", "name:ASC"}, u.Query()["sort"])
	assert.Equal(t, "7", u.Query().Get("id"))
	assert.Equal(t, "abc", u.Query().Get("session"))
}

func TestEncodeSortQuery_EmptySpecDropsSort(t *testing.T) {
	out, err := EncodeSortQuery("/report?id=7&sort=a:ASC", nil)
	require.NoError(t, err)
	assert.Equal(t, "/report?id=7", out)
}

func TestRenderSortIndicators(t *testing.T) {
	doc := newDoc(t)

	RenderSortIndicators(doc, SortSpec{{Field: "status", Dir: Desc}})
	status := th(t, doc, "status")
	icon := dom.FindFirst(status, dom.Class(ClassSortIcon))
	require.NotNil(t, icon)
	assert.True(t, dom.HasClass(icon, ClassSortDesc))
	assert.Nil(t, dom.FindFirst(status, dom.Class(ClassSortIndex)), "single key has no rank badge")
	assert.Nil(t, dom.FindFirst(th(t, doc, "name"), dom.Class(ClassSortIcon)))

	RenderSortIndicators(doc, SortSpec{{Field: "owner", Dir: Asc}, {Field: "name", Dir: Asc}})
	assert.Nil(t, dom.FindFirst(th(t, doc, "status"), dom.Class(ClassSortIcon)), "stale icon removed")
	assert.Equal(t, "1", dom.Text(dom.FindFirst(th(t, doc, "owner"), dom.Class(ClassSortIndex))))
	assert.Equal(t, "2", dom.Text(dom.FindFirst(th(t, doc, "name"), dom.Class(ClassSortIndex))))
	assert.Len(t, dom.Find(th(t, doc, "owner"), dom.Class(ClassSortIcon)), 1)

	assert.Equal(t, "Owner", DeriveColumns(doc)[2].Label, "indicators are not part of the label")
}

func TestParseSortValues(t *testing.T) {
	spec := ParseSortValues([]string{"status:desc", "bad", ":ASC", "name:SIDEWAYS", "owner:ASC", "status:ASC"})
	assert.Equal(t, SortSpec{{Field: "status", Dir: Desc}, {Field: "owner", Dir: Asc}}, spec)
}
