package report

import (
	"log/slog"

	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/dom"
)

// Replacer fetches a URL and swaps the response into the element with the
// given id. Request must not block; the replacer owns retries, errors and
// ordering of responses.
type Replacer interface {
	Request(url, targetID string)
}

// View is the view state of one page session. It is built once per full page
// load and is not safe for concurrent use; every method is an event handler
// expected to run on the UI loop.
type View struct {
	doc      *dom.Document
	location string

	sort    SortState
	drag    DragController
	chooser ColumnChooser
	detail  DetailPanel

	settings *SettingsStore
	replacer Replacer
	logger   *slog.Logger
	lastErr  error
}

// NewView builds the view state for doc, loaded from location.
func NewView(doc *dom.Document, location string, settings *SettingsStore, replacer Replacer, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &View{
		doc:      doc,
		location: location,
		settings: settings,
		replacer: replacer,
		logger:   logger,
	}
}

// Document returns the live document.
func (v *View) Document() *dom.Document { return v.doc }

// Location returns the page URL the session was loaded from.
func (v *View) Location() string { return v.location }

// Sort returns the current sort.
func (v *View) Sort() SortSpec { return v.sort.Spec() }

// Columns derives the columns from the live header row.
func (v *View) Columns() []Column { return DeriveColumns(v.doc) }

// DragSource returns the header being dragged, or nil.
func (v *View) DragSource() *html.Node { return v.drag.Source() }

// Detail returns the panel record and whether the panel is open.
func (v *View) Detail() (RowDetail, bool) { return v.detail.Detail(), v.detail.Open() }

// Docked reports whether the panel is docked.
func (v *View) Docked() bool { return IsDocked(v.doc) }

// LastError returns the most recent storage failure, cleared by the next
// successful save.
func (v *View) LastError() error { return v.lastErr }

// Reload starts a new page session on doc. Sort, drag and panel state are
// discarded and the synchronization pass runs.
func (v *View) Reload(doc *dom.Document, location string) {
	v.doc = doc
	v.location = location
	v.sort.Reset()
	v.drag = DragController{}
	v.detail = DetailPanel{}
	v.Ready()
}

// Ready runs the synchronization pass for the initial document.
func (v *View) Ready() {
	v.synchronize()
}

// ContentReplaced resynchronizes after the element targetID received new
// markup. Only the results container triggers a pass.
func (v *View) ContentReplaced(targetID string) {
	if targetID != ResultsContainerID {
		return
	}
	v.synchronize()
}

// synchronize rebuilds the chooser, redraws sort indicators from memory,
// reapplies the stored layout and makes every header draggable, in that
// order. The chooser is rebuilt again once the layout is applied so it lists
// the reordered, partly hidden header set.
func (v *View) synchronize() {
	v.chooser.Rebuild(v.doc)
	RenderSortIndicators(v.doc, v.sort.Spec())
	if v.settings != nil && v.settings.LoadAndApply(v.doc) {
		v.chooser.Rebuild(v.doc)
	}
	for _, th := range allHeaders(v.doc) {
		dom.SetAttr(th, "draggable", "true")
	}
}

// SortURL returns the location with the current sort encoded.
func (v *View) SortURL() string {
	u, err := EncodeSortQuery(v.location, v.sort.Spec())
	if err != nil {
		v.logger.Warn("encode sort query", "location", v.location, "error", err)
		return v.location
	}
	return u
}

// HeaderClick handles a click on th. target is the element actually hit;
// clicks on a resize handle and on headers without a field are ignored.
func (v *View) HeaderClick(th, target *html.Node, ctrl bool) {
	if th == nil {
		return
	}
	for n := target; n != nil && n != th; n = n.Parent {
		if dom.HasClass(n, ClassResizer) {
			return
		}
	}
	field := dom.Attr(th, FieldAttr)
	if field == "" {
		return
	}

	if ctrl {
		v.sort.CtrlClick(field)
	} else {
		v.sort.Click(field)
	}
	RenderSortIndicators(v.doc, v.sort.Spec())

	if v.replacer != nil {
		v.replacer.Request(v.SortURL(), ResultsContainerID)
	}
}

// RowClick handles a click on a body row. Clicks landing on a link or a
// button inside the row are ignored.
func (v *View) RowClick(tr, target *html.Node) {
	if tr == nil || !dom.HasClass(tr, ClassClickableRow) {
		return
	}
	if hit := dom.Closest(target, dom.Any(dom.Tag("a"), dom.Tag("button"))); hit != nil && dom.Contains(tr, hit) {
		return
	}
	v.detail.Show(v.doc, tr)
}

// DragStart begins dragging th.
func (v *View) DragStart(th *html.Node) { v.drag.Start(th) }

// DragOver marks th as hovered by the drag.
func (v *View) DragOver(th *html.Node) { v.drag.Over(th) }

// DragLeave clears the hover mark from th.
func (v *View) DragLeave(th *html.Node) { v.drag.Leave(th) }

// Drop commits a drop onto th and saves the new order when it changed.
func (v *View) Drop(th *html.Node) {
	if v.drag.Drop(th) {
		v.save()
	}
}

// DragEnd finishes the drag gesture.
func (v *View) DragEnd() { v.drag.End(v.doc) }

// ChooserEntries rebuilds the chooser from the live headers and returns it.
func (v *View) ChooserEntries() []ChooserEntry {
	v.chooser.Rebuild(v.doc)
	return v.chooser.Entries()
}

// SetColumnVisible shows or hides field and saves the layout.
func (v *View) SetColumnVisible(field string, visible bool) {
	SetColumnVisible(v.doc, field, visible)
	v.chooser.Rebuild(v.doc)
	v.save()
}

// ToggleDock flips the docked layout and saves it.
func (v *View) ToggleDock() {
	ToggleDock(v.doc)
	v.save()
}

// CloseDetail closes the panel, undocks and saves the layout.
func (v *View) CloseDetail() {
	v.detail.Close(v.doc)
	v.save()
}

func (v *View) save() {
	if v.settings == nil {
		return
	}
	if err := v.settings.Save(v.doc); err != nil {
		v.lastErr = err
		v.logger.Error("save view settings failed", "error", err)
		return
	}
	v.lastErr = nil
}
