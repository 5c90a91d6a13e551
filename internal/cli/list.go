package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/refresh"
	"github.com/rileyhilliard/stordash/internal/table"
	"github.com/rileyhilliard/stordash/internal/ui"
	"github.com/rileyhilliard/stordash/internal/util"
)

// listOptions holds the flags of 'stordash list'.
type listOptions struct {
	Table    string
	Sort     string
	Asc      bool
	Page     int
	All      bool
	Insights bool
}

// ListOutput is the --json form of 'stordash list'.
type ListOutput struct {
	Table      string            `json:"table"`
	Sort       table.SortConfig  `json:"sort"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
	Source     provider.Source   `json:"source,omitempty"`
	Devices    []device.Record   `json:"devices"`
	Summary    *metrics.Summary  `json:"summary,omitempty"`
	Insights   []metrics.Insight `json:"insights,omitempty"`
}

// listCommand prints one table.
func listCommand(opts listOptions) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if MachineMode() {
		out, err := loadList(context.Background(), cfg, opts)
		if err != nil {
			return err
		}
		return WriteJSONSuccess(os.Stdout, out)
	}

	text, err := renderList(context.Background(), cfg, opts)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// listController loads the single table a list invocation asks for.
func listController(ctx context.Context, cfg *config.Config, opts listOptions) (*refresh.Controller, refresh.TableConfig, error) {
	cat, err := ParseTableFlag(opts.Table)
	if err != nil {
		return nil, refresh.TableConfig{}, err
	}
	tcfg, _ := tableConfig(cat)

	ropts, err := controllerOptions(cfg)
	if err != nil {
		return nil, tcfg, err
	}
	ropts.Tables = []refresh.TableConfig{tcfg}
	ropts.Background = false
	ropts.Logger = logger.NewEnvLogger("[refresh]")

	if opts.Sort != "" || opts.Asc {
		sort, ok := ropts.Sorts[cat]
		if !ok || sort.Key == "" {
			sort = tcfg.DefaultSort
		}
		if opts.Sort != "" {
			if !slices.Contains(tcfg.Columns, opts.Sort) {
				return nil, tcfg, errors.New(errors.ErrConfig,
					fmt.Sprintf("Can't sort the %s table by '%s'", cat, opts.Sort),
					"Sortable columns: "+strings.Join(tcfg.Columns, ", "))
			}
			sort = table.SortConfig{Key: opts.Sort, Direction: table.Desc}
		}
		if opts.Asc {
			sort.Direction = table.Asc
		}
		ropts.Sorts[cat] = sort
	}

	p, err := newProvider(cfg, logger.NewEnvLogger("[provider]"))
	if err != nil {
		return nil, tcfg, err
	}
	ctrl, err := refresh.New(p, ropts)
	if err != nil {
		return nil, tcfg, err
	}
	if err := ctrl.Load(ctx); err != nil {
		return nil, tcfg, err
	}

	if opts.Page > 1 && !ctrl.RequestPage(cat, opts.Page) {
		return nil, tcfg, errors.New(errors.ErrConfig,
			fmt.Sprintf("Page %d is out of range", opts.Page),
			fmt.Sprintf("The %s table has %d page(s).", cat, ctrl.Pagination(cat).TotalPages))
	}
	return ctrl, tcfg, nil
}

func listRows(ctrl *refresh.Controller, cat device.Category, all bool) []device.Record {
	if all {
		return ctrl.Records(cat)
	}
	return ctrl.VisibleRows(cat)
}

// loadList returns the machine-readable form of a list invocation.
func loadList(ctx context.Context, cfg *config.Config, opts listOptions) (*ListOutput, error) {
	ctrl, tcfg, err := listController(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	cat := tcfg.Category
	p := ctrl.Pagination(cat)

	out := &ListOutput{
		Table:      string(cat),
		Sort:       ctrl.SortConfig(cat),
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      p.TotalItems,
		Source:     ctrl.Source(cat),
		Devices:    listRows(ctrl, cat, opts.All),
		Summary:    ctrl.Summary(cat),
	}
	if opts.Insights {
		out.Insights = ctrl.Insights(cat)
	}
	return out, nil
}

// renderList renders a list invocation as a plain table.
func renderList(ctx context.Context, cfg *config.Config, opts listOptions) (string, error) {
	ctrl, tcfg, err := listController(ctx, cfg, opts)
	if err != nil {
		return "", err
	}
	cat := tcfg.Category
	sort := ctrl.SortConfig(cat)
	p := ctrl.Pagination(cat)

	rate := func(key string, r device.Record) metrics.Tier {
		if !slices.Contains(tcfg.Rated, key) {
			return ""
		}
		return ctrl.Rate(cat, key, r)
	}

	var b strings.Builder
	b.WriteString(ui.RenderHeader(ui.HeaderInfo{
		Title:   cat.Title(),
		Source:  sourceLabel(ctrl.Source(cat)),
		Details: fmt.Sprintf("sorted by %s %s", ui.ColumnTitle(sort.Key), sort.Direction),
	}))

	rows := listRows(ctrl, cat, opts.All)
	if len(rows) == 0 {
		b.WriteString(ui.MutedStyle().Render("No devices to show") + "\n")
	} else {
		b.WriteString(ui.RenderSimpleTable(
			ui.DeviceColumns(tcfg.Columns),
			ui.DeviceRows(rows, tcfg.Columns, table.DefaultFields(), rate),
		))
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("Page %d of %d · %s", p.Page, max(p.TotalPages, 1), util.Count(p.TotalItems, "device", "devices"))
	if opts.All {
		footer = "All " + util.Count(p.TotalItems, "device", "devices")
	}
	b.WriteString(ui.MutedStyle().Render(footer) + "\n")

	if opts.Insights {
		b.WriteString("\n")
		b.WriteString(ui.RenderInsights(cat.Title()+" vs industry benchmarks", ctrl.Insights(cat)))
	}
	return b.String(), nil
}

func sourceLabel(src provider.Source) string {
	switch src {
	case provider.SourceLive:
		return "live API"
	case provider.SourceCatalog:
		return "built-in catalog"
	case provider.SourceFallback:
		return ui.SymbolWarning + " built-in catalog (API unreachable)"
	default:
		return ""
	}
}
