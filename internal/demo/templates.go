package demo

import "html/template"

const tableTemplate = `{{define "table"}}<table class="results-table" data-report="{{.Report.ID}}">
<thead><tr>
{{- range .Columns}}
<th data-field="{{.Field}}" class="col-{{.Field}}{{if .Hidden}} hidden-col{{end}}">{{.Label}}<span class="resizer"></span></th>
{{- end}}
{{- if .Report.Child}}
<th class="actions-col">Actions</th>
{{- end}}
</tr></thead>
<tbody>
{{- range .Rows}}
<tr class="clickable-row">
{{- range .Cells}}<td class="col-{{.Field}}{{if .Hidden}} hidden-col{{end}}">{{.Value}}</td>{{end}}
{{- if .Drill}}<td class="actions-col"><a href="{{.Drill}}">Open</a></td>{{end}}
</tr>
{{- else}}
<tr><td colspan="{{len $.Columns}}">No results</td></tr>
{{- end}}
</tbody>
</table>{{end}}`

const pageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Report.Title}}</title></head>
<body>
<header><h1>{{.Report.Title}}</h1><span class="session">{{.SessionID}}</span></header>
<div id="column-chooser-dropdown" class="dropdown"></div>
<div id="results-table-container">{{template "table" .}}</div>
<div id="sidebar-overlay"></div>
<aside id="detail-sidebar">
<button id="dock-sidebar-btn" type="button">Dock</button>
<section id="record-details-section"></section>
<pre id="raw-data-section"></pre>
</aside>
</body>
</html>`

const indexTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Reports</title></head>
<body>
<ul class="reports">
{{- range .}}
<li><a href="/report?id={{.ID}}">{{.Title}}</a></li>
{{- end}}
</ul>
</body>
</html>`

var (
	pageTmpl  = template.Must(template.Must(template.New("page").Parse(tableTemplate)).Parse(pageTemplate))
	indexTmpl = template.Must(template.New("index").Parse(indexTemplate))
)

type cellView struct {
	Field  string
	Value  string
	Hidden bool
}

type rowView struct {
	Cells []cellView
	Drill string
}

type pageView struct {
	Report    *Report
	Columns   []Column
	Rows      []rowView
	SessionID string
}
