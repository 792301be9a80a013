// Package report implements the view-state engine for a server-rendered
// report table.
//
// The engine works directly on a dom.Document. The document owns column
// state: header order, the hidden marker and the docked marker all live in
// the markup, and every operation here reads them fresh. The only in-memory
// state is the sort specification and the current drag source, both held by
// View.
//
// Responsibilities by file:
//
//   - columns.go derives Column values from the header row and keeps the
//     column chooser model in step with it.
//   - sort.go owns SortState (click and ctrl-click), renders the header
//     indicators and encodes the sort into the request URL.
//   - drag.go reorders header and body cells when a header is dropped onto
//     another header.
//   - settings.go reads and writes ViewSettings through a storage.Storage and
//     reapplies them to freshly swapped markup.
//   - detail.go builds the row detail record and mirrors the side panel state
//     into the document.
//   - view.go ties it together. View.Ready and View.ContentReplaced run the
//     synchronization pass; the gesture methods are the event handlers.
//
// Event handlers never return errors. Storage failures and stale references
// are logged through the injected slog.Logger and otherwise ignored, so a bad
// settings record can never block the table from rendering.
//
// Row detail extraction pairs cells with headers by position. Callers must
// finish any reorder (and the synchronization pass that follows a swap)
// before selecting a row; View enforces this by running both on the same
// goroutine.
//
// Tests here assert with testify, as do the dom and demo packages whose
// fixtures are parsed documents. Packages that wrap I/O use plain t.Fatalf.
package report

// Markup contract shared with the report server.
const (
	SettingsKey        = "gobi_report_settings_v1"
	ThemeKey           = "gobi_ui_theme"
	ResultsContainerID = "results-table-container"

	FieldAttr    = "data-field"
	ActionsLabel = "Actions"

	ClassResultsTable = "results-table"
	ClassHidden       = "hidden-col"
	ClassDragging     = "dragging"
	ClassDragOver     = "drag-over"
	ClassDocked       = "sidebar-docked"
	ClassResizer      = "resizer"
	ClassSortIcon     = "sort-icon"
	ClassSortAsc      = "sort-asc"
	ClassSortDesc     = "sort-desc"
	ClassSortIndex    = "sort-index"
	ClassSelected     = "selected"
	ClassClickableRow = "clickable-row"
	ClassActive       = "active"

	DetailSidebarID = "detail-sidebar"
	OverlayID       = "sidebar-overlay"
	DockButtonID    = "dock-sidebar-btn"
	RecordSectionID = "record-details-section"
	RawSectionID    = "raw-data-section"
)

// ColumnClass returns the class that ties a header to its body cells.
func ColumnClass(field string) string {
	return "col-" + field
}
