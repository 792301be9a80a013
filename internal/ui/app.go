package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/five82/gobiview/internal/config"
	"github.com/five82/gobiview/internal/dom"
	"github.com/five82/gobiview/internal/gobi"
	"github.com/five82/gobiview/internal/report"
	"github.com/five82/gobiview/internal/state"
	"github.com/five82/gobiview/internal/storage"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    gobi.PageFetcher
	Snapshots *state.Store
	Settings  *report.SettingsStore
	Storage   storage.Storage
	Location  string
	Logger    *slog.Logger
	Config    *config.Config
	PollTick  time.Duration
}

// pressState records a mouse press on a header until it is released.
type pressState struct {
	th   *html.Node
	grip bool
	ctrl bool
	x, y int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    gobi.PageFetcher
	snapshots *state.Store
	storage   storage.Storage
	config    *config.Config
	logger    *slog.Logger
	pollTick  time.Duration

	// Page session
	view    *report.View
	swapper *gobi.Swapper

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	notice   string

	// Data state
	loading     bool
	loaded      bool
	loadErr     error
	snapshot    state.Snapshot
	lastVersion uint64

	// Table cursor
	activeCol int
	activeRow int
	rowOffset int
	grabbing  bool

	// Mouse gesture
	press    *pressState
	dragging bool
	dragOver *html.Node

	// Detail panel
	panel        viewport.Model
	rawCollapsed bool
}

// writeClipboard copies text to the system clipboard.
var writeClipboard = clipboard.WriteAll

// New creates a new Bubble Tea model. The page is fetched by Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	doc, _ := dom.ParseString("")
	swapper := gobi.NewSwapper()
	view := report.NewView(doc, opts.Location, opts.Settings, swapper, logger)
	swapper.On("view", view.ContentReplaced)

	var themeName string
	if opts.Storage != nil {
		name, ok, err := opts.Storage.GetItem(report.ThemeKey)
		if err != nil {
			logger.Warn("load theme failed", "error", err)
		} else if ok {
			themeName = name
		}
	}

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		snapshots: opts.Snapshots,
		storage:   opts.Storage,
		config:    opts.Config,
		logger:    logger,
		pollTick:  pollTick,
		view:      view,
		swapper:   swapper,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		loading:   opts.Client != nil,
		panel:     viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.client != nil {
		cmds = append(cmds, fetchPageCmd(m.ctx, m.client, m.view.Location()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampCursor()
		m.syncPanel()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.handleSnapshot(state.Snapshot(msg))
		return m, nil

	case pageMsg:
		m.handlePage(msg)
		return m, nil

	case swapMsg:
		m.handleSwap(gobi.Response(msg))
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	m.notice = ""

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		m.clampCursor()
		return m, cmd
	}

	if m.grabbing {
		return m.handleGrabKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		cmd := m.reload()
		return m, cmd
	}

	if !m.loaded {
		return m, nil
	}
	return m.handleTableKey(msg)
}

// handleTableKey processes keys that act on the loaded table.
func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	_, open := m.view.Detail()

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.activeCol > 0 {
			m.activeCol--
		}
	case key.Matches(msg, m.keys.Right):
		if m.activeCol < len(l.columns)-1 {
			m.activeCol++
		}
	case key.Matches(msg, m.keys.Up):
		if m.activeRow > 0 {
			m.activeRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.activeRow < len(l.rows)-1 {
			m.activeRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.activeRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.activeRow = max(len(l.rows)-1, 0)

	case key.Matches(msg, m.keys.Sort), key.Matches(msg, m.keys.SortAdd):
		if m.activeCol < len(l.columns) {
			th := l.columns[m.activeCol].th
			m.view.HeaderClick(th, th, key.Matches(msg, m.keys.SortAdd))
			cmd := m.dispatchRequests()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Grab):
		if m.activeCol < len(l.columns) {
			m.view.DragStart(l.columns[m.activeCol].th)
			m.grabbing = true
		}
	case key.Matches(msg, m.keys.Columns):
		m.modal = newChooserModal(m.view)

	case key.Matches(msg, m.keys.Select):
		if m.activeRow < len(l.rows) {
			m.openRow(l.rows[m.activeRow].tr, nil)
		}
	case key.Matches(msg, m.keys.Dock):
		if open {
			m.view.ToggleDock()
			m.syncPanel()
		}
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Escape):
		if open {
			m.view.CloseDetail()
		}
	case key.Matches(msg, m.keys.Copy):
		m.copyRecord()
	case key.Matches(msg, m.keys.Raw):
		if open {
			m.rawCollapsed = !m.rawCollapsed
			m.syncPanel()
		}

	case msg.String() == "pgup", msg.String() == "pgdown":
		if open {
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		}
	}

	m.ensureVisible()
	return m, nil
}

// handleGrabKey moves a grabbed column: arrows pick the drop target, enter
// drops and esc cancels.
func (m Model) handleGrabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	source := m.view.DragSource()

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.activeCol > 0 {
			m.activeCol--
		}
		m.markDropTarget(l, source)
	case key.Matches(msg, m.keys.Right):
		if m.activeCol < len(l.columns)-1 {
			m.activeCol++
		}
		m.markDropTarget(l, source)
	case key.Matches(msg, m.keys.Select):
		if m.activeCol < len(l.columns) {
			m.view.Drop(l.columns[m.activeCol].th)
		}
		m.endGrab()
		if i := m.layout().indexOf(source); i >= 0 {
			m.activeCol = i
		}
	case key.Matches(msg, m.keys.Escape):
		m.endGrab()
	}
	return m, nil
}

func (m *Model) markDropTarget(l tableLayout, source *html.Node) {
	for i, c := range l.columns {
		if i == m.activeCol && c.th != source {
			m.view.DragOver(c.th)
			continue
		}
		m.view.DragLeave(c.th)
	}
}

func (m *Model) endGrab() {
	m.view.DragEnd()
	m.grabbing = false
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.snapshots != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.snapshots))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handlePage installs a freshly loaded page and starts a new view session.
func (m *Model) handlePage(msg pageMsg) {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		m.logger.Error("load report page failed", "location", msg.location, "error", msg.err)
		return
	}
	doc, err := dom.ParseString(msg.markup)
	if err != nil {
		m.loadErr = fmt.Errorf("parse report page: %w", err)
		m.logger.Error("load report page failed", "location", msg.location, "error", err)
		return
	}

	m.loadErr = nil
	m.loaded = true
	m.view.Reload(doc, msg.location)
	m.activeCol, m.activeRow, m.rowOffset = 0, 0, 0
	m.grabbing, m.press, m.dragging, m.dragOver = false, nil, false, nil
	m.resetSource(msg.location)
	m.logger.Info("report page loaded", "location", msg.location, "rows", m.rowCount())
}

// handleSwap applies a fetched partial. Superseded responses are dropped by
// the swapper.
func (m *Model) handleSwap(resp gobi.Response) {
	changed, err := m.swapper.Swap(m.view.Document(), resp)
	if err != nil {
		m.notice = "Sort failed: " + classifyConnectionError(err)
		m.logger.Warn("swap results failed", "url", resp.Request.URL, "error", err)
		return
	}
	if !changed {
		return
	}
	if m.snapshots != nil {
		m.snapshots.Update(resp.Request.URL, resp.Markup, nil)
		m.lastVersion = m.snapshots.Snapshot().Version
	}
	m.contentChanged()
}

// handleSnapshot swaps in polled results newer than what is shown.
func (m *Model) handleSnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !m.loaded || !snap.HasMarkup() || snap.Version <= m.lastVersion {
		return
	}
	m.lastVersion = snap.Version
	if err := m.swapper.Replace(m.view.Document(), report.ResultsContainerID, snap.Markup); err != nil {
		m.logger.Warn("apply polled results failed", "error", err)
		return
	}
	m.contentChanged()
}

// contentChanged settles UI state after the results table was replaced.
func (m *Model) contentChanged() {
	if m.grabbing {
		m.endGrab()
	}
	m.press, m.dragging, m.dragOver = nil, false, nil
	m.clampCursor()
	m.syncPanel()
}

// dispatchRequests turns queued swap requests into fetch commands. The
// snapshot store follows the newest URL so the poller refreshes the shown
// sort.
func (m *Model) dispatchRequests() tea.Cmd {
	reqs := m.swapper.Drain()
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		m.resetSource(req.URL)
		if m.client == nil {
			continue
		}
		cmds = append(cmds, fetchFragmentCmd(m.ctx, m.swapper, m.client, req))
	}
	return tea.Batch(cmds...)
}

// resetSource points the snapshot store at source and treats everything
// polled so far as seen.
func (m *Model) resetSource(source string) {
	if m.snapshots == nil {
		return
	}
	m.snapshots.SetSource(source)
	m.lastVersion = m.snapshots.Snapshot().Version
}

// openRow shows tr in the detail panel.
func (m *Model) openRow(tr, target *html.Node) {
	m.view.RowClick(tr, target)
	m.panel.GotoTop()
	m.syncPanel()
}

// copyRecord copies the open record's raw dump to the clipboard.
func (m *Model) copyRecord() {
	detail, open := m.view.Detail()
	if !open {
		m.notice = "Open a row to copy its record"
		return
	}
	if err := writeClipboard(detail.JSON()); err != nil {
		m.notice = "Copy failed: " + err.Error()
		m.logger.Warn("copy record failed", "error", err)
		return
	}
	m.notice = "Copied raw record"
}

// cycleTheme switches to the next theme and remembers it.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.storage != nil {
		if err := m.storage.SetItem(report.ThemeKey, m.theme.Name); err != nil {
			m.logger.Warn("save theme failed", "error", err)
		}
	}
	m.syncPanel()
}

// reload fetches the page again, which starts a new view session.
func (m *Model) reload() tea.Cmd {
	if m.client == nil {
		return nil
	}
	m.loading = true
	return fetchPageCmd(m.ctx, m.client, m.view.Location())
}

// layout lays out the table inside the table box.
func (m Model) layout() tableLayout {
	return buildTable(m.view.Document(), max(m.tableWidth()-2, 0))
}

func (m Model) rowCount() int {
	return len(report.BodyRows(m.view.Document()))
}

// visibleRows is the number of body rows that fit in the table box.
func (m Model) visibleRows() int {
	return max(m.contentHeight()-3, 1)
}

// clampCursor keeps the cursor inside the current table.
func (m *Model) clampCursor() {
	l := m.layout()
	m.activeCol = clamp(m.activeCol, 0, len(l.columns)-1)
	m.activeRow = clamp(m.activeRow, 0, len(l.rows)-1)
	m.ensureVisible()
}

// ensureVisible scrolls so the cursor row is on screen.
func (m *Model) ensureVisible() {
	vis := m.visibleRows()
	if m.activeRow < m.rowOffset {
		m.rowOffset = m.activeRow
	}
	if m.activeRow >= m.rowOffset+vis {
		m.rowOffset = m.activeRow - vis + 1
	}
	m.rowOffset = max(m.rowOffset, 0)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the table box and, when a record is open, the
// detail panel beside it. An undocked panel dims the table behind it.
func (m Model) renderContent() string {
	h := m.contentHeight()
	if !m.loaded {
		msg := "Loading report..."
		if m.loadErr != nil {
			msg = "Could not load report: " + m.loadErr.Error() + " (r to retry)"
		} else if !m.loading {
			msg = "No report loaded (r to load)"
		}
		return m.renderTitledBox("Results", m.theme.Styles().MutedText.Render(msg), m.width, h, false)
	}

	_, open := m.view.Detail()
	dimmed := open && !m.view.Docked()
	tw := m.tableWidth()
	l := buildTable(m.view.Document(), max(tw-2, 0))

	title := fmt.Sprintf("Results (%d)", len(l.rows))
	table := m.renderTitledBox(title, m.renderTable(l, tw-2, h-2, dimmed), tw, h, !dimmed)
	if !open {
		return table
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, table, m.renderPanel(m.width-tw, h))
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type pageMsg struct {
	location string
	markup   string
	err      error
}

type swapMsg gobi.Response

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchPageCmd(ctx context.Context, client gobi.PageFetcher, location string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, pageFetchTimeout)
		defer cancel()
		markup, err := client.FetchPage(ctx, location)
		return pageMsg{location: location, markup: markup, err: err}
	}
}

func fetchFragmentCmd(ctx context.Context, swapper *gobi.Swapper, client gobi.FragmentFetcher, req gobi.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, pageFetchTimeout)
		defer cancel()
		return swapMsg(swapper.Fetch(ctx, client, req))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
