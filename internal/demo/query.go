package demo

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/five82/gobiview/internal/report"
)

// filterRows keeps rows whose field equals value. An unknown field or an
// empty value leaves rows unfiltered.
func filterRows(r *Report, field, value string) []Record {
	if field == "" || value == "" || !r.hasField(field) {
		return slices.Clone(r.Rows)
	}
	var out []Record
	for _, row := range r.Rows {
		if row[field] == value {
			out = append(out, row)
		}
	}
	return out
}

// sortRows orders rows by spec, primary key first. Keys on unknown fields
// are dropped. The sort is stable so equal rows keep dataset order.
func sortRows(r *Report, rows []Record, spec report.SortSpec) {
	keys := make(report.SortSpec, 0, len(spec))
	for _, k := range spec {
		if r.hasField(k.Field) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(rows, func(a, b Record) int {
		for _, k := range keys {
			c := compareValues(a[k.Field], b[k.Field])
			if k.Dir == report.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// compareValues compares numerically when both values are numbers.
func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(fa, fb)
	}
	return cmp.Compare(a, b)
}
