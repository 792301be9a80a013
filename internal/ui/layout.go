package ui

import "time"

// Screen rows above the table. The header line is row 0, the command bar
// row 1 and the table box border row 2.
const (
	// chromeRows is the number of rows used by the header and command bar.
	chromeRows = 2

	// tableHeaderRow is the screen row holding the column headers.
	tableHeaderRow = chromeRows + 1

	// tableFirstRow is the screen row of the first visible body row.
	tableFirstRow = tableHeaderRow + 1

	// tableOriginX is the screen column where table content starts.
	tableOriginX = 1
)

// Column sizing.
const (
	// minColumnWidth is the narrowest a column is squeezed to.
	minColumnWidth = 4

	// maxColumnWidth caps wide cells so one column cannot take the table.
	maxColumnWidth = 32

	// columnGap is the grip cell drawn after each column.
	columnGap = 1
)

// Detail panel sizing.
const (
	// panelMinWidth is the narrowest the detail panel is drawn.
	panelMinWidth = 32

	// panelPercent is the panel's share of the screen width.
	panelPercent = 40

	// LayoutCompactWidth is the threshold below which the header drops the
	// report location.
	LayoutCompactWidth = 100
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI reads the snapshot store.
	DefaultUIInterval = time.Second

	// pageFetchTimeout bounds a full page load.
	pageFetchTimeout = 15 * time.Second
)
