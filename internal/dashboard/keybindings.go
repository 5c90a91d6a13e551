package dashboard

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewDetail
	ViewCompare
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyRefresh     = "r"
	KeyNextTable   = "tab"
	KeyPrevTable   = "shift+tab"
	KeySortNext    = "s"
	KeySortPrev    = "S"
	KeySortReverse = "o"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeySelectFirst = "home"
	KeySelectLast  = "end"
	KeyPageNext    = "right"
	KeyPageNextL   = "l"
	KeyPageNextAlt = "pgdown"
	KeyPagePrev    = "left"
	KeyPagePrevH   = "h"
	KeyPagePrevAlt = "pgup"
	KeyInsights    = "i"
	KeyBackground  = "b"
	KeyExpand      = "enter"
	KeyMark        = "m"
	KeyCompare     = "c"
	KeyClearMarks  = "x"
	KeyCollapse    = "esc"
	KeyToggleHelp  = "?"
	keyFirstTable  = "1"
	keyLastTable   = "9"
)

// HandleKeyMsg processes keyboard input and updates the model state.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	if key == KeyQuit || key == KeyQuitAlt {
		m.quitting = true
		return true, tea.Quit
	}

	if m.viewMode == ViewDetail {
		return m.handleDetailKey(msg)
	}
	if m.viewMode == ViewCompare {
		return m.handleCompareKey(key)
	}

	category := m.ActiveTable().Category

	switch key {
	case KeyRefresh:
		return true, m.refreshCmd()

	case KeyNextTable:
		m.switchTable(m.active + 1)
		return true, nil

	case KeyPrevTable:
		m.switchTable(m.active - 1)
		return true, nil

	case KeySortNext, KeySortPrev, KeySortReverse:
		sortKey := m.nextSortKey(key)
		if sortKey == "" {
			return true, nil
		}
		m.selected = 0
		return true, m.sortCmd(category, sortKey)

	case KeySelectPrev, KeySelectPrevK:
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		if m.selected < len(m.ctrl.VisibleRows(category))-1 {
			m.selected++
		}
		return true, nil

	case KeySelectFirst:
		m.selected = 0
		return true, nil

	case KeySelectLast:
		m.selected = max(len(m.ctrl.VisibleRows(category))-1, 0)
		return true, nil

	case KeyPageNext, KeyPageNextL, KeyPageNextAlt:
		if m.ctrl.RequestPage(category, m.ctrl.Pagination(category).Page+1) {
			m.selected = 0
		}
		return true, nil

	case KeyPagePrev, KeyPagePrevH, KeyPagePrevAlt:
		if m.ctrl.RequestPage(category, m.ctrl.Pagination(category).Page-1) {
			m.selected = 0
		}
		return true, nil

	case KeyInsights:
		m.showInsights = !m.showInsights
		return true, nil

	case KeyBackground:
		m.ctrl.SetBackground(!m.ctrl.Background())
		return true, nil

	case KeyExpand:
		if rec, ok := m.Selected(); ok {
			m.detailID = rec.ID
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
		}
		return true, nil

	case KeyMark:
		if rec, ok := m.Selected(); ok {
			m.toggleMark(rec.ID)
		}
		return true, nil

	case KeyCompare:
		m.viewMode = ViewCompare
		return true, nil

	case KeyClearMarks:
		m.marked = nil
		return true, nil

	case KeyCollapse:
		return true, nil
	}

	if len(key) == 1 && key >= keyFirstTable && key <= keyLastTable {
		if idx := int(key[0] - '1'); idx < len(m.tables) {
			m.switchTable(idx)
		}
		return true, nil
	}

	return false, nil
}

// handleDetailKey handles keys while a device is expanded. Unbound keys
// scroll the viewport.
func (m *Model) handleDetailKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case KeyCollapse:
		m.viewMode = ViewTable
		return true, nil
	case KeyRefresh:
		return true, m.refreshCmd()
	}
	if !m.viewportReady {
		return false, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return true, cmd
}

// handleCompareKey handles keys while the comparison is shown.
func (m *Model) handleCompareKey(key string) (bool, tea.Cmd) {
	switch key {
	case KeyCollapse:
		m.viewMode = ViewTable
		return true, nil
	case KeyClearMarks:
		m.marked = nil
		return true, nil
	case KeyRefresh:
		return true, m.refreshCmd()
	}
	return false, nil
}

// switchTable activates table idx, wrapping around at either end.
func (m *Model) switchTable(idx int) {
	n := len(m.tables)
	if n == 0 {
		return
	}
	m.active = ((idx % n) + n) % n
	m.selected = 0
	m.clampSelection()
}

// nextSortKey returns the key to request for a sort key press. Reversing
// re-requests the active key, which flips its direction.
func (m Model) nextSortKey(key string) string {
	cfg := m.ActiveTable()
	if len(cfg.Columns) == 0 {
		return ""
	}
	current := m.ctrl.RequestedSort(cfg.Category).Key
	if key == KeySortReverse {
		return current
	}
	idx := slices.Index(cfg.Columns, current)
	step := 1
	if key == KeySortPrev {
		step = -1
	}
	n := len(cfg.Columns)
	return cfg.Columns[((idx+step)%n+n)%n]
}
