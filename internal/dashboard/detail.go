package dashboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/ui"
	"github.com/rileyhilliard/stordash/internal/util"
)

var detailContainerStyle = lipgloss.NewStyle().Padding(0, 2)

// detailField is one line of a detail section.
type detailField struct {
	key   string // field key, empty for free text
	label string
	value string
}

// renderDetailView renders the expanded single-device view.
func (m Model) renderDetailView() string {
	rec, ok := m.detailRecord()
	if !ok {
		return detailContainerStyle.Render(
			LabelStyle.Render("This device is no longer in the data set.") + "\n\n" +
				FooterStyle.Render("esc back"))
	}

	header := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render(rec.Name)
	if rec.ProductLine != "" {
		header += "  " + MutedStyle.Render(rec.ProductLine)
	}

	body := m.renderDetailContent(rec)
	if m.viewportReady {
		body = m.detailViewport.View()
	}

	footer := FooterStyle.Render("↑↓ scroll  esc back  r refresh  ? help  q quit")
	return header + "\n\n" + detailContainerStyle.Render(body) + "\n" + footer
}

// updateDetailViewportContent re-renders the detail body into the viewport.
func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	rec, ok := m.detailRecord()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(rec))
}

// detailRecord looks up the expanded device.
func (m Model) detailRecord() (device.Record, bool) {
	return m.recordByID(m.detailID)
}

// recordByID looks up a device by ID, preferring the active table's copy so
// ratings match what was selected.
func (m Model) recordByID(id int) (device.Record, bool) {
	order := append([]int{m.active}, lo.Range(len(m.tables))...)
	for _, i := range order {
		for _, rec := range m.ctrl.Records(m.tables[i].Category) {
			if rec.ID == id {
				return rec, true
			}
		}
	}
	return device.Record{}, false
}

// rate classifies a field with the first table that rates it, starting
// with the active one.
func (m Model) rate(key string, rec device.Record) metrics.Tier {
	order := append([]int{m.active}, lo.Range(len(m.tables))...)
	for _, i := range order {
		cfg := m.tables[i]
		if slices.Contains(cfg.Rated, key) {
			return m.ctrl.Rate(cfg.Category, key, rec)
		}
	}
	return ""
}

func (m Model) renderDetailContent(rec device.Record) string {
	width := max(m.width-6, 40)

	sections := []struct {
		title  string
		value  string
		fields []detailField
	}{
		{"Overview", fmt.Sprintf("#%d", rec.ID), []detailField{
			{label: "Type", value: orMissing(rec.Type)},
			{label: "Tier", value: orMissing(rec.Tier)},
			{label: "Deployment", value: orMissing(rec.Deployment)},
			{key: "capacity"},
			{key: "price"},
		}},
		{"Scores", "", []detailField{
			{key: "deviceScore"},
			{key: "score"},
			{key: "greenScore"},
			{key: "featureScore"},
		}},
		{"Performance", "", []detailField{
			{key: "readSpeed"},
			{key: "writeSpeed"},
			{key: "iops"},
			{key: "latency"},
			{key: "throughput"},
		}},
		{"Sustainability", "", []detailField{
			{key: "sustainability.powerEfficiency"},
			{key: "sustainability.carbonReduction"},
			{key: "sustainability.circularEconomy"},
		}},
		{"Features", "", m.featureFields(rec)},
	}

	var b strings.Builder
	for _, s := range sections {
		b.WriteString(SectionHeader(s.title, s.value, width) + "\n")
		for _, f := range s.fields {
			b.WriteString(SectionContentLine(m.renderDetailField(f, rec), width) + "\n")
		}
		b.WriteString(SectionFooter(width) + "\n")
	}
	b.WriteString(m.renderSuggestions(rec, width))
	return strings.TrimRight(b.String(), "\n")
}

// renderSuggestions lists where rec trails the active table's collection,
// with what to do about each gap.
func (m Model) renderSuggestions(rec device.Record, width int) string {
	category := m.ActiveTable().Category
	summary := m.ctrl.Summary(category)
	suggestions := metrics.Suggestions(category, rec, summary)
	if len(suggestions) == 0 {
		return ""
	}

	inner := width - 4
	var b strings.Builder
	b.WriteString(SectionHeader("Suggestions", category.Title(), width) + "\n")
	for i, s := range suggestions {
		if i > 0 {
			b.WriteString(SectionContentLine("", width) + "\n")
		}
		line := lipgloss.NewStyle().Foreground(ColorAccent).Render(s.Area)
		if s.Key != "" {
			gap := fmt.Sprintf("  %s vs %s", metrics.FormatValue(s.Key, s.Value), metrics.FormatValue(s.Key, s.Baseline))
			line += MutedStyle.Render(gap)
		}
		b.WriteString(SectionContentLine(line, width) + "\n")
		for _, r := range s.Recommendations {
			b.WriteString(SectionContentLine(ValueStyle.Render(ui.Truncate("• "+r, inner)), width) + "\n")
		}
	}
	b.WriteString(SectionFooter(width) + "\n")
	return b.String()
}

func (m Model) renderDetailField(f detailField, rec device.Record) string {
	label := f.label
	value := f.value
	var tier metrics.Tier
	if f.key != "" {
		if label == "" {
			label = ui.ColumnTitle(f.key)
		}
		value = ui.FormatCell(f.key, rec, m.fields)
		tier = m.rate(f.key, rec)
	}
	rendered := ValueStyle.Render(value)
	if sym := ui.TierSymbol(tier); sym != "" {
		rendered = TierStyle(tier).Render(value + " " + sym)
	}
	return LabelStyle.Render(ui.PadRight(label, 16)) + rendered
}

func (m Model) featureFields(rec device.Record) []detailField {
	fields := []detailField{
		{key: "dataReduction"},
		{label: "Snapshots", value: orMissing(rec.Snapshots)},
		{label: "Replication", value: orMissing(rec.Replication)},
	}
	protocols := rec.Protocols
	f := rec.Features
	if f != nil && len(f.Protocols) > 0 {
		protocols = f.Protocols
	}
	fields = append(fields, detailField{label: "Protocols", value: joinOrMissing(protocols)})
	if f == nil {
		return fields
	}
	return append(fields,
		detailField{label: "Deduplication", value: orMissing(f.DataManagement.Deduplication)},
		detailField{label: "Compression", value: orMissing(f.DataManagement.Compression)},
		detailField{label: "Tiering", value: orMissing(f.DataManagement.Tiering)},
		detailField{label: "Encryption", value: orMissing(f.Security.Encryption)},
		detailField{label: "Access Control", value: joinOrMissing(f.Security.AccessControl)},
		detailField{label: "Availability", value: joinOrMissing(f.Availability)},
		detailField{label: "Management", value: joinOrMissing(f.Management)},
	)
}

func orMissing(s string) string {
	if s == "" {
		return ui.MissingValue
	}
	return s
}

func joinOrMissing(items []string) string {
	return util.JoinOrDefault(items, ui.MissingValue)
}
