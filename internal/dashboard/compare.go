package dashboard

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/ui"
	"github.com/rileyhilliard/stordash/internal/util"
)

const (
	compareLabelWidth  = 18
	compareColumnWidth = 18
)

// toggleMark adds or removes id from the comparison set.
func (m *Model) toggleMark(id int) {
	if slices.Contains(m.marked, id) {
		m.marked = lo.Without(m.marked, id)
		return
	}
	m.marked = append(slices.Clone(m.marked), id)
}

// isMarked reports whether id is in the comparison set.
func (m Model) isMarked(id int) bool {
	return slices.Contains(m.marked, id)
}

// markedRecords resolves the comparison set in marking order. Devices that
// left the data set are skipped.
func (m Model) markedRecords() []device.Record {
	return lo.FilterMap(m.marked, func(id int, _ int) (device.Record, bool) {
		return m.recordByID(id)
	})
}

// renderCompareView renders the side-by-side analysis of marked devices.
func (m Model) renderCompareView() string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("Compare devices")
	footer := FooterStyle.Render("x clear  esc back  r refresh  ? help  q quit")

	c, err := metrics.Compare(m.markedRecords())
	if err != nil {
		msg := errors.Reason(err)
		var sdErr *errors.Error
		if stderrors.As(err, &sdErr) && sdErr.Suggestion != "" {
			msg = sdErr.Suggestion
		}
		body := LabelStyle.Render(msg) + "\n" + MutedStyle.Render("Mark devices with m in the table view.")
		return title + "\n\n" + detailContainerStyle.Render(body) + "\n\n" + footer
	}

	width := max(m.width-6, compareLabelWidth+compareColumnWidth*len(c.Devices)+4)
	body := m.renderComparison(c, width)
	return title + "\n\n" + detailContainerStyle.Render(body) + "\n" + footer
}

func (m Model) renderComparison(c *metrics.Comparison, width int) string {
	row := func(label string, cell func(d metrics.DeviceComparison) string) string {
		line := LabelStyle.Render(ui.PadRight(label, compareLabelWidth))
		for _, d := range c.Devices {
			line += ValueStyle.Render(ui.PadRight(ui.Truncate(cell(d), compareColumnWidth-1), compareColumnWidth))
		}
		return SectionContentLine(line, width)
	}
	pct := func(v float64) string { return fmt.Sprintf("%.1f%%", v) }

	var b strings.Builder
	b.WriteString(SectionHeader("Side by side", util.Count(len(c.Devices), "device", "devices"), width) + "\n")
	b.WriteString(row("", func(d metrics.DeviceComparison) string { return d.Record.Name }) + "\n")
	rows := []struct {
		label string
		cell  func(d metrics.DeviceComparison) string
	}{
		{"Read Speed", func(d metrics.DeviceComparison) string { return pct(d.ReadPct) }},
		{"Write Speed", func(d metrics.DeviceComparison) string { return pct(d.WritePct) }},
		{"IOPS", func(d metrics.DeviceComparison) string { return pct(d.IOPSPct) }},
		{"Perf Score", func(d metrics.DeviceComparison) string { return pct(d.ScorePct) }},
		{"Power", func(d metrics.DeviceComparison) string { return fmt.Sprintf("%.2f W", d.PowerWatts) }},
		{"Monthly Cost", func(d metrics.DeviceComparison) string { return fmt.Sprintf("$%.2f", d.MonthlyCost) }},
		{"Monthly CO2", func(d metrics.DeviceComparison) string { return fmt.Sprintf("%.2f kg", d.MonthlyEmissions) }},
		{"Features", func(d metrics.DeviceComparison) string {
			return fmt.Sprintf("%d of %d", d.FeatureCount, len(metrics.CriticalFeatures))
		}},
		{"Price", func(d metrics.DeviceComparison) string { return ui.FormatCell("price", d.Record, m.fields) }},
	}
	for _, r := range rows {
		b.WriteString(row(r.label, r.cell) + "\n")
	}
	b.WriteString(SectionFooter(width) + "\n")

	best := []detailField{
		{label: "Fastest", value: c.Fastest},
		{label: "Greenest", value: c.Greenest},
		{label: "Most Features", value: c.MostFeatures},
		{label: "Best Value", value: orMissing(c.BestValue)},
		{label: "Avg Perf Score", value: fmt.Sprintf("%.1f", c.AvgScore)},
		{label: "Max Read Speed", value: metrics.FormatValue("readSpeed", c.MaxReadSpeed)},
		{label: "Avg Price", value: metrics.FormatValue("price", c.AvgPrice)},
	}
	b.WriteString(SectionHeader("Best performers", "", width) + "\n")
	for _, f := range best {
		b.WriteString(SectionContentLine(m.renderDetailField(f, device.Record{}), width) + "\n")
	}
	b.WriteString(SectionFooter(width))
	return b.String()
}
