package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/dom"
	"github.com/five82/gobiview/internal/report"
)

// handleMouse turns terminal mouse events into header clicks, header drags
// and row clicks. A press and release on the same header is a click; a press
// followed by motion is a drag that ends on release.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.loaded || m.showHelp || m.modal != nil {
		return m, nil
	}
	_, open := m.view.Detail()
	onPanel := open && msg.X >= m.tableWidth()
	l := m.layout()
	x := msg.X - tableOriginX

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			return m.handleWheel(msg, onPanel)
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}
		m.notice = ""
		if onPanel {
			return m, nil
		}
		if open && !m.view.Docked() {
			// The dimmed table is the overlay; clicking it closes the panel.
			m.view.CloseDetail()
			return m, nil
		}
		switch {
		case msg.Y == tableHeaderRow:
			ci, grip := l.columnAt(x)
			if ci < 0 {
				return m, nil
			}
			m.activeCol = ci
			m.press = &pressState{th: l.columns[ci].th, grip: grip, ctrl: msg.Ctrl, x: msg.X, y: msg.Y}
		case msg.Y >= tableFirstRow && msg.Y < tableFirstRow+m.visibleRows():
			ri := m.rowOffset + msg.Y - tableFirstRow
			if ri < len(l.rows) {
				m.activeRow = ri
				m.openRow(l.rows[ri].tr, l.clickTarget(ri, x))
			}
		}

	case tea.MouseActionMotion:
		if m.press == nil || m.press.grip {
			return m, nil
		}
		if !m.dragging {
			if msg.X == m.press.x && msg.Y == m.press.y {
				return m, nil
			}
			m.view.DragStart(m.press.th)
			m.dragging = true
		}
		over := m.headerAt(l, msg)
		if over != m.dragOver {
			if m.dragOver != nil {
				m.view.DragLeave(m.dragOver)
			}
			if over != nil {
				m.view.DragOver(over)
			}
			m.dragOver = over
		}

	case tea.MouseActionRelease:
		press := m.press
		m.press = nil
		if m.dragging {
			if over := m.headerAt(l, msg); over != nil {
				m.view.Drop(over)
			}
			m.view.DragEnd()
			m.dragging, m.dragOver = false, nil
			if press != nil {
				if i := m.layout().indexOf(press.th); i >= 0 {
					m.activeCol = i
				}
			}
			return m, nil
		}
		if press == nil || m.headerAt(l, msg) != press.th {
			return m, nil
		}
		target := press.th
		if press.grip {
			target = dom.FindFirst(press.th, dom.Class(report.ClassResizer))
		}
		m.view.HeaderClick(press.th, target, press.ctrl)
		cmd := m.dispatchRequests()
		return m, cmd
	}
	return m, nil
}

// headerAt returns the header cell under the pointer, or nil.
func (m Model) headerAt(l tableLayout, msg tea.MouseMsg) *html.Node {
	if msg.Y != tableHeaderRow || msg.X >= m.tableWidth() {
		return nil
	}
	ci, _ := l.columnAt(msg.X - tableOriginX)
	if ci < 0 {
		return nil
	}
	return l.columns[ci].th
}

// handleWheel scrolls the panel under the pointer, or the table.
func (m Model) handleWheel(msg tea.MouseMsg, onPanel bool) (tea.Model, tea.Cmd) {
	if onPanel {
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd
	}
	step := 3
	if msg.Button == tea.MouseButtonWheelUp {
		step = -step
	}
	m.activeRow = clamp(m.activeRow+step, 0, len(m.layout().rows)-1)
	m.ensureVisible()
	return m, nil
}
