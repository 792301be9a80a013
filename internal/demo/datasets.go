package demo

// Column describes one report column as the server renders it.
type Column struct {
	Field  string
	Label  string
	Hidden bool
}

// Record is one result row keyed by field.
type Record map[string]string

// Report is a built-in dataset served under /report?id=<ID>.
type Report struct {
	ID      string
	Title   string
	Columns []Column
	Rows    []Record

	// Child drills into another report filtered on ChildColumn.
	Child       string
	ChildColumn string
}

// Reports returns the built-in datasets keyed by id.
func Reports() map[string]*Report {
	projects := &Report{
		ID:    "1",
		Title: "Projects",
		Columns: []Column{
			{Field: "project", Label: "Project"},
			{Field: "status", Label: "Status"},
			{Field: "owner", Label: "Owner"},
			{Field: "budget", Label: "Budget"},
			{Field: "region", Label: "Region"},
			{Field: "created", Label: "Created", Hidden: true},
		},
		Rows: []Record{
			{"project": "atlas", "status": "active", "owner": "ann", "budget": "12000", "region": "emea", "created": "2025-01-14"},
			{"project": "borealis", "status": "paused", "owner": "bob", "budget": "8500", "region": "amer", "created": "2025-02-03"},
			{"project": "cinder", "status": "active", "owner": "cy", "budget": "23000", "region": "apac", "created": "2024-11-21"},
			{"project": "delta", "status": "done", "owner": "ann", "budget": "4000", "region": "amer", "created": "2024-08-30"},
			{"project": "ember", "status": "active", "owner": "dee", "budget": "8500", "region": "emea", "created": "2025-03-17"},
			{"project": "fjord", "status": "done", "owner": "bob", "budget": "15500", "region": "emea", "created": "2024-06-02"},
		},
		Child:       "2",
		ChildColumn: "project",
	}

	tasks := &Report{
		ID:    "2",
		Title: "Tasks",
		Columns: []Column{
			{Field: "task", Label: "Task"},
			{Field: "project", Label: "Project"},
			{Field: "assignee", Label: "Assignee"},
			{Field: "hours", Label: "Hours"},
			{Field: "state", Label: "State"},
		},
		Rows: []Record{
			{"task": "T-101", "project": "atlas", "assignee": "ann", "hours": "6", "state": "open"},
			{"task": "T-102", "project": "atlas", "assignee": "dee", "hours": "14", "state": "review"},
			{"task": "T-103", "project": "borealis", "assignee": "bob", "hours": "3", "state": "open"},
			{"task": "T-104", "project": "cinder", "assignee": "cy", "hours": "21", "state": "closed"},
			{"task": "T-105", "project": "cinder", "assignee": "ann", "hours": "9", "state": "open"},
			{"task": "T-106", "project": "ember", "assignee": "dee", "hours": "2", "state": "closed"},
			{"task": "T-107", "project": "fjord", "assignee": "bob", "hours": "11", "state": "review"},
		},
	}

	return map[string]*Report{
		projects.ID: projects,
		tasks.ID:    tasks,
	}
}

func (r *Report) hasField(field string) bool {
	for _, c := range r.Columns {
		if c.Field == field {
			return true
		}
	}
	return false
}
