package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/refresh"
	"github.com/rileyhilliard/stordash/internal/table"
	"github.com/rileyhilliard/stordash/internal/ui"
)

const clockInterval = time.Second

// changedMsg signals that the controller's state moved.
type changedMsg struct{}

// clockMsg redraws relative timestamps.
type clockMsg time.Time

// actionDoneMsg reports the outcome of a refresh, retry or sort command.
type actionDoneMsg struct {
	action string
	err    error
}

// Bridge forwards controller change notifications into a running program.
// Pass Notify as refresh.Options.OnChange and Attach the program once it
// exists. Notifications before Attach are dropped; the first render reads
// the controller directly.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	pending atomic.Bool
}

// Attach sets the program notifications are sent to.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()
}

// Notify asks the program to redraw. It never blocks: the controller calls
// it from inside tea commands and Update, and bursts collapse into one
// message.
func (b *Bridge) Notify() {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()
	if p == nil {
		return
	}
	if !b.pending.CompareAndSwap(false, true) {
		return
	}
	go func() {
		b.pending.Store(false)
		p.Send(changedMsg{})
	}()
}

// Model is the bubbletea model for the device dashboard.
type Model struct {
	ctx    context.Context
	ctrl   *refresh.Controller
	tables []refresh.TableConfig
	fields table.Fields

	active   int   // index into tables
	selected int   // row within the visible page
	detailID int   // record shown in ViewDetail
	marked   []int // device IDs picked for ViewCompare, in marking order

	viewMode     ViewMode
	showHelp     bool
	showInsights bool
	quitting     bool

	width  int
	height int

	spinner        spinner.Model
	detailViewport viewport.Model
	viewportReady  bool

	now func() time.Time
}

// NewModel creates a dashboard over ctrl. ctx bounds the reloads the
// dashboard starts.
func NewModel(ctx context.Context, ctrl *refresh.Controller) Model {
	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		tables:  ctrl.Tables(),
		fields:  table.DefaultFields(),
		spinner: ui.NewSpinner(),
		width:   100,
		height:  30,
		now:     time.Now,
	}
}

// Init starts the spinner and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, clockCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		viewportHeight := max(m.height-headerHeight-footerHeight, 1)

		if !m.viewportReady {
			m.detailViewport = viewport.New(m.width, viewportHeight)
			m.detailViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.detailViewport.Width = m.width
			m.detailViewport.Height = viewportHeight
		}
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case changedMsg:
		m.clampSelection()
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case actionDoneMsg:
		// Failures surface through the controller's error state and
		// per-table errors.
		m.clampSelection()

	case clockMsg:
		return m, clockCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

const (
	actionRefresh = "refresh"
	actionRetry   = "retry"
	actionSort    = "sort"
)

// refreshCmd runs a full reload, or a retry from the error state.
func (m Model) refreshCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	if ctrl.State() == refresh.StateError {
		return func() tea.Msg {
			return actionDoneMsg{action: actionRetry, err: ctrl.Retry(ctx)}
		}
	}
	return func() tea.Msg {
		return actionDoneMsg{action: actionRefresh, err: ctrl.Refresh(ctx)}
	}
}

func (m Model) sortCmd(category device.Category, key string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: actionSort, err: ctrl.RequestSort(ctx, category, key)}
	}
}

// ActiveTable returns the configuration of the table on screen.
func (m Model) ActiveTable() refresh.TableConfig {
	return m.tables[m.active]
}

// Selected returns the highlighted record, if the page has one.
func (m Model) Selected() (device.Record, bool) {
	rows := m.ctrl.VisibleRows(m.ActiveTable().Category)
	if m.selected < 0 || m.selected >= len(rows) {
		return device.Record{}, false
	}
	return rows[m.selected], true
}

// clampSelection keeps the highlighted row on the current page.
func (m *Model) clampSelection() {
	n := len(m.ctrl.VisibleRows(m.ActiveTable().Category))
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// SecondsSinceUpdate returns seconds since the last completed load, or -1.
func (m Model) SecondsSinceUpdate() int {
	last := m.ctrl.LastUpdate()
	if last.IsZero() {
		return -1
	}
	return int(m.now().Sub(last).Seconds())
}
