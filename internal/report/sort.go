package report

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/five82/gobiview/internal/dom"
)

// Direction is a sort direction as sent to the server.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortKey is one entry of a SortSpec.
type SortKey struct {
	Field string
	Dir   Direction
}

// String renders the key in query form, field:DIR.
func (k SortKey) String() string {
	return k.Field + ":" + string(k.Dir)
}

// SortSpec is an ordered list of sort keys, primary first. A field appears at
// most once.
type SortSpec []SortKey

// Index returns the position of field, or -1.
func (s SortSpec) Index(field string) int {
	for i, k := range s {
		if k.Field == field {
			return i
		}
	}
	return -1
}

// SortState holds the in-memory sort for one page session. The zero value is
// an empty sort.
type SortState struct {
	spec SortSpec
}

// Click applies a plain header click. Clicking the sole active key flips it;
// anything else collapses the sort to field ascending.
func (s *SortState) Click(field string) {
	if len(s.spec) == 1 && s.spec[0].Field == field {
		s.spec[0].Dir = s.spec[0].Dir.Flip()
		return
	}
	s.spec = SortSpec{{Field: field, Dir: Asc}}
}

// CtrlClick applies an additive click. A present field flips in place and a
// new field is appended ascending.
func (s *SortState) CtrlClick(field string) {
	if i := s.spec.Index(field); i >= 0 {
		s.spec[i].Dir = s.spec[i].Dir.Flip()
		return
	}
	s.spec = append(s.spec, SortKey{Field: field, Dir: Asc})
}

// Spec returns a copy of the current sort.
func (s *SortState) Spec() SortSpec {
	out := make(SortSpec, len(s.spec))
	copy(out, s.spec)
	return out
}

// Reset clears the sort.
func (s *SortState) Reset() {
	s.spec = nil
}

// RenderSortIndicators rewrites the indicator children of every field header.
// Headers outside spec end up with none; with more than one key each active
// header also shows its 1-based rank.
func RenderSortIndicators(doc *dom.Document, spec SortSpec) {
	for _, th := range fieldHeaders(doc) {
		for _, n := range dom.Find(th, dom.Any(dom.Class(ClassSortIcon), dom.Class(ClassSortIndex))) {
			dom.Detach(n)
		}

		idx := spec.Index(dom.Attr(th, FieldAttr))
		if idx < 0 {
			continue
		}
		dirClass := ClassSortAsc
		if spec[idx].Dir == Desc {
			dirClass = ClassSortDesc
		}
		dom.Append(th, dom.NewElement("i", ClassSortIcon, dirClass))
		if len(spec) > 1 {
			badge := dom.NewElement("span", ClassSortIndex)
			dom.SetText(badge, strconv.Itoa(idx+1))
			dom.Append(th, badge)
		}
	}
}

// EncodeSortQuery returns rawURL with every sort parameter replaced by one
// sort=field:DIR per key, in spec order. Other parameters are kept.
func EncodeSortQuery(rawURL string, spec SortSpec) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse location: %w", err)
	}
	params := u.Query()
	params.Del("sort")
	for _, k := range spec {
		params.Add("sort", k.String())
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// ParseSortValues decodes sort=field:DIR parameter values. Malformed entries
// are skipped and a repeated field keeps its first position.
func ParseSortValues(values []string) SortSpec {
	var spec SortSpec
	for _, raw := range values {
		field, dir, ok := strings.Cut(raw, ":")
		if !ok || field == "" {
			continue
		}
		d := Direction(strings.ToUpper(dir))
		if d != Asc && d != Desc {
			continue
		}
		if spec.Index(field) >= 0 {
			continue
		}
		spec = append(spec, SortKey{Field: field, Dir: d})
	}
	return spec
}
