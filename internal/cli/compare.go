package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/refresh"
	"github.com/rileyhilliard/stordash/internal/ui"
)

// compareCommand prints the side-by-side analysis of the devices in args.
func compareCommand(args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := loadComparison(context.Background(), cfg, args)
	if err != nil {
		return err
	}
	if MachineMode() {
		return WriteJSONSuccess(os.Stdout, c)
	}
	fmt.Print(renderComparison(c))
	return nil
}

// parseDeviceIDs converts command arguments to device IDs.
func parseDeviceIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil || id <= 0 {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' is not a device ID", a),
				"Pass the numeric IDs shown by 'stordash list --all'.")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// loadComparison loads the overview collection and compares the devices
// with the given IDs, in argument order.
func loadComparison(ctx context.Context, cfg *config.Config, args []string) (*metrics.Comparison, error) {
	ids, err := parseDeviceIDs(args)
	if err != nil {
		return nil, err
	}

	tcfg, _ := tableConfig(device.CategoryOverview)
	ropts, err := controllerOptions(cfg)
	if err != nil {
		return nil, err
	}
	ropts.Tables = []refresh.TableConfig{tcfg}
	ropts.Background = false
	ropts.Logger = logger.NewEnvLogger("[refresh]")

	p, err := newProvider(cfg, logger.NewEnvLogger("[provider]"))
	if err != nil {
		return nil, err
	}
	ctrl, err := refresh.New(p, ropts)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}

	byID := make(map[int]device.Record)
	for _, r := range ctrl.Records(device.CategoryOverview) {
		byID[r.ID] = r
	}
	records := make([]device.Record, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("No device with ID %d", id),
				"Run 'stordash list --all' to see the available devices.")
		}
		records = append(records, r)
	}
	return metrics.Compare(records)
}

// renderComparison renders a comparison as a metric-by-device table and
// the best performers.
func renderComparison(c *metrics.Comparison) string {
	columns := []ui.TableColumn{{Title: "Metric", Width: 16}}
	for _, d := range c.Devices {
		columns = append(columns, ui.TableColumn{Title: d.Record.Name, Width: 18})
	}

	metric := func(label string, cell func(d metrics.DeviceComparison) string) []string {
		row := []string{label}
		for _, d := range c.Devices {
			row = append(row, cell(d))
		}
		return row
	}
	pct := func(v float64) string { return fmt.Sprintf("%.1f%%", v) }
	rows := [][]string{
		metric("Read Speed", func(d metrics.DeviceComparison) string { return pct(d.ReadPct) }),
		metric("Write Speed", func(d metrics.DeviceComparison) string { return pct(d.WritePct) }),
		metric("IOPS", func(d metrics.DeviceComparison) string { return pct(d.IOPSPct) }),
		metric("Perf Score", func(d metrics.DeviceComparison) string { return pct(d.ScorePct) }),
		metric("Power", func(d metrics.DeviceComparison) string { return fmt.Sprintf("%.2f W", d.PowerWatts) }),
		metric("Monthly Cost", func(d metrics.DeviceComparison) string { return fmt.Sprintf("$%.2f", d.MonthlyCost) }),
		metric("Monthly CO2", func(d metrics.DeviceComparison) string { return fmt.Sprintf("%.2f kg", d.MonthlyEmissions) }),
		metric("Features", func(d metrics.DeviceComparison) string {
			return fmt.Sprintf("%d of %d", d.FeatureCount, len(metrics.CriticalFeatures))
		}),
	}

	var b strings.Builder
	b.WriteString(ui.RenderHeader(ui.HeaderInfo{
		Title:   "Comparison",
		Details: fmt.Sprintf("%d devices", len(c.Devices)),
	}))
	b.WriteString(ui.RenderSimpleTable(columns, rows))
	b.WriteString("\n\n")

	bestValue := c.BestValue
	if bestValue == "" {
		bestValue = ui.MissingValue
	}
	lines := [][2]string{
		{"Fastest", c.Fastest},
		{"Greenest", c.Greenest},
		{"Most features", c.MostFeatures},
		{"Best value", bestValue},
		{"Avg perf score", fmt.Sprintf("%.1f", c.AvgScore)},
		{"Max read speed", metrics.FormatValue("readSpeed", c.MaxReadSpeed)},
		{"Avg price", metrics.FormatValue("price", c.AvgPrice)},
	}
	for _, l := range lines {
		b.WriteString(ui.MutedStyle().Render(ui.PadRight(l[0], 16)) + l[1] + "\n")
	}
	return b.String()
}
