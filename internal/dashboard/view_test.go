package dashboard

import (
	"context"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/provider"
)

func TestView_Table(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	rows := ctrl.VisibleRows(device.CategoryOverview)
	require.Len(t, rows, 5)

	view := m.View()

	assert.Contains(t, view, "stordash")
	assert.Contains(t, view, "updated just now")
	assert.Contains(t, view, "auto 30s")
	assert.Contains(t, view, "1 Overview")
	assert.Contains(t, view, "4 Features")
	assert.Contains(t, view, "Device Score ▼")
	assert.Contains(t, view, "▸ "+rows[0].Name, "first row is selected")
	for _, r := range rows {
		assert.Contains(t, view, r.Name)
	}
	assert.Contains(t, view, "Page 1 of 3 · 15 devices · sorted by Device Score ▼")
	assert.Contains(t, view, "? help")
	assert.NotContains(t, view, "industry benchmarks")
}

func TestView_TierMarkers(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	cat := device.CategoryOverview
	rec := ctrl.VisibleRows(cat)[0]

	row := m.renderRow(m.ActiveTable(), rec, false)
	tier := ctrl.Rate(cat, "deviceScore", rec)
	require.NotEmpty(t, tier)
	assert.Contains(t, row, rec.Name)
	assert.Regexp(t, `[▲▼●]`, row)
}

func TestView_Insights(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(m, "i")

	view := m.View()
	assert.Contains(t, view, "Overview vs industry benchmarks")
	assert.Contains(t, view, "Device Score")
	assert.Contains(t, view, "vs 85")
}

func TestView_Loading(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	ctrl := newController(t, provider.NewCatalog(nil), nil)
	m := NewModel(context.Background(), ctrl)

	assert.Contains(t, m.View(), "Loading storage devices...")
}

func TestView_Error(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	p := newFlakyProvider()
	p.fail.Store(true)
	ctrl := newController(t, p, nil)
	require.Error(t, ctrl.Load(context.Background()))
	m := NewModel(context.Background(), ctrl)

	view := m.View()
	assert.Contains(t, view, "Couldn't load device data")
	assert.Contains(t, view, "connection refused")
	assert.Contains(t, view, "r retry · q quit")
}

func TestView_SortFailure(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	p := newFlakyProvider()
	ctrl := newController(t, p, nil)
	require.NoError(t, ctrl.Load(context.Background()))
	m := NewModel(context.Background(), ctrl)

	p.fail.Store(true)
	m, cmd := press(m, "s")
	require.NotNil(t, cmd)
	m = update(m, cmd())

	view := m.View()
	assert.Contains(t, view, "sort failed")
	assert.Contains(t, view, "connection refused")
	assert.Contains(t, view, "15 devices", "previous rows stay visible")
}

func TestView_FallbackWarning(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	ctrl := newController(t, fallbackProvider{provider.NewCatalog(nil)}, nil)
	require.NoError(t, ctrl.Load(context.Background()))
	m := NewModel(context.Background(), ctrl)

	assert.Contains(t, m.View(), "device API unreachable, showing built-in catalog")
}

func TestView_BackgroundPaused(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(m, "b")

	assert.Contains(t, m.View(), "auto refresh paused")
}

func TestView_Detail(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(m, "enter")
	rec, ok := m.detailRecord()
	require.True(t, ok)

	view := m.View()
	assert.Contains(t, view, rec.Name)
	for _, section := range []string{"Overview", "Scores", "Performance", "Sustainability", "Features"} {
		assert.Contains(t, view, section)
	}
	assert.Contains(t, view, "Perf Score")
	assert.Contains(t, view, "esc back")
}

func TestView_DetailSuggestions(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.viewMode = ViewDetail
	m.detailID = 1
	view := m.View()
	assert.Contains(t, view, "Suggestions")
	assert.Contains(t, view, "Optimization Opportunities", "the top device trails nothing")

	// Device 7 trails the collection's mean device score of 89.
	m.detailID = 7
	view = m.View()
	assert.Contains(t, view, "Overall Device Performance")
	assert.Contains(t, view, "78 vs 89")
	assert.Contains(t, view, "Review current workload requirements")
	assert.NotContains(t, view, "Optimization Opportunities")
}

func TestView_Compare(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	rows := ctrl.VisibleRows(device.CategoryOverview)

	m, _ = press(m, "m", "down", "m")
	tableView := m.View()
	assert.Contains(t, tableView, "2 marked")
	assert.Contains(t, tableView, "▸✓"+rows[1].Name, "selected marked row")
	assert.Contains(t, tableView, "✓", "marked row carries the mark")

	m, _ = press(m, "c")
	view := m.View()
	assert.Contains(t, view, "Compare devices")
	assert.Contains(t, view, rows[0].Name)
	assert.Contains(t, view, rows[1].Name)
	assert.Contains(t, view, "100.0%")
	assert.Contains(t, view, "Best performers")
	assert.Contains(t, view, "Best Value")
	assert.Contains(t, view, "esc back")
}

func TestView_CompareNeedsTwo(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(m, "m", "c")
	view := m.View()
	assert.Contains(t, view, "Select at least 2 devices to compare")
	assert.NotContains(t, view, "Best performers")
}

func TestView_DetailMissingDevice(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.viewMode = ViewDetail
	m.detailID = -1

	assert.Contains(t, m.View(), "no longer in the data set")
}

func TestView_Help(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(m, "?")

	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "Reverse sort order")
	assert.Contains(t, view, "Press ? to close")
}

func TestSectionHelpers(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	header := SectionHeader("Scores", "#1", 30)
	assert.Equal(t, 30, lipgloss.Width(header))
	assert.Contains(t, header, "Scores")

	line := SectionContentLine("value", 30)
	assert.Equal(t, 30, lipgloss.Width(line))

	assert.Equal(t, 30, lipgloss.Width(SectionFooter(30)))
}
