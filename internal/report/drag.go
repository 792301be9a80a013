package report

import (
	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/dom"
)

// DragController tracks one header drag at a time.
type DragController struct {
	source *html.Node
}

// Source returns the header being dragged, or nil.
func (d *DragController) Source() *html.Node {
	return d.source
}

// Start records th as the drag source. A drag already in progress is
// replaced.
func (d *DragController) Start(th *html.Node) {
	if th == nil {
		return
	}
	if d.source != nil && d.source != th {
		dom.RemoveClass(d.source, ClassDragging)
	}
	d.source = th
	dom.AddClass(th, ClassDragging)
}

// Over marks th as a potential drop target.
func (d *DragController) Over(th *html.Node) {
	if th == nil {
		return
	}
	dom.AddClass(th, ClassDragOver)
}

// Leave clears the drop-target mark from th.
func (d *DragController) Leave(th *html.Node) {
	if th == nil {
		return
	}
	dom.RemoveClass(th, ClassDragOver)
}

// Drop moves the source header next to target and applies the same move to
// the cells of every body row. It reports whether the order changed. A drop
// without a source, onto the source itself or onto a header in another row
// changes nothing.
func (d *DragController) Drop(target *html.Node) bool {
	if target == nil {
		return false
	}
	defer dom.RemoveClass(target, ClassDragOver)

	src := d.source
	if src == nil || src == target || src.Parent == nil || src.Parent != target.Parent {
		return false
	}

	srcIdx, tgtIdx := dom.Index(src), dom.Index(target)
	if srcIdx < tgtIdx {
		dom.InsertAfter(target, src)
	} else {
		dom.InsertBefore(target, src)
	}

	table := dom.Closest(target, dom.Class(ClassResultsTable))
	for _, tr := range bodyRows(table) {
		cells := dom.ChildElements(tr, dom.Tag("td"))
		if srcIdx >= len(cells) || tgtIdx >= len(cells) {
			continue
		}
		if srcIdx < tgtIdx {
			dom.InsertAfter(cells[tgtIdx], cells[srcIdx])
		} else {
			dom.InsertBefore(cells[tgtIdx], cells[srcIdx])
		}
	}
	return true
}

// End finishes the gesture whether or not a drop happened. Drag marks are
// cleared from the source and from every header of doc.
func (d *DragController) End(doc *dom.Document) {
	if d.source != nil {
		dom.RemoveClass(d.source, ClassDragging, ClassDragOver)
	}
	for _, th := range allHeaders(doc) {
		dom.RemoveClass(th, ClassDragging, ClassDragOver)
	}
	d.source = nil
}
