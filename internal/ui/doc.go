// Package ui provides the terminal front end for a gobi report page.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It fetches the report page once, parses it
// into a dom.Document and hands the document to a report.View, which owns all
// view state: sort, drag, column visibility, the detail panel and persisted
// layout. The UI never edits the document itself; it translates key presses
// and mouse gestures into report.View events and redraws the table from the
// document on every frame.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, messages and commands
//   - mouse.go: Header click, ctrl-click, header drag and row click gestures
//   - table.go: Table geometry from the document, hit-testing and rendering
//   - panel.go: Detail panel sizing and content
//   - chooser.go: Column chooser modal
//   - header.go: Status line and command bar
//   - help.go: Help overlay
//   - theme.go, style_helpers.go, box.go, strings.go: Presentation helpers
//
// # Event Flow
//
//  1. Init fetches the page; the response starts a new view session
//  2. Sorting queues a request on the gobi.Swapper; the UI runs the fetch as a
//     command and swaps the response back in, newest request wins
//  3. Every swap of the results container notifies the view, which restores
//     sort indicators and the stored layout
//  4. A tick reads state.Store; newer polled results are swapped in the same way
//  5. Context cancellation or e/ctrl+c shuts the program down
//
// # Key Bindings
//
//   - ←/→: Active column; s sorts by it, S adds or flips it as a sort key
//   - m: Grab the active column, ←/→ to choose, enter to drop, esc to cancel
//   - j/k, g/G: Move the row cursor; enter opens the row in the detail panel
//   - c: Column chooser (space toggles)
//   - D: Dock the panel; x or esc closes it; y copies the raw record; z folds the raw dump
//   - r: Reload the page; T: cycle theme; h/?: help; e or ctrl+c: quit
package ui
