package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/ui"
	"github.com/rileyhilliard/stordash/internal/util"
)

// statusTimeout bounds each health check.
const statusTimeout = 10 * time.Second

// StatusOutput represents the JSON output for status command.
type StatusOutput struct {
	Config string        `json:"config,omitempty"`
	Mode   string        `json:"mode"`
	Checks []HealthCheck `json:"checks"`
}

// HealthCheck is the result of checking one data source.
type HealthCheck struct {
	Target  string `json:"target"`
	Role    string `json:"role"` // "primary" or "fallback"
	Mode    string `json:"mode"`
	Healthy bool   `json:"healthy"`
	Devices int    `json:"devices,omitempty"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// statusCommand checks every configured data source.
func statusCommand() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	checks, err := checkSources(context.Background(), cfg)
	if err != nil {
		return err
	}
	out := StatusOutput{Config: path, Mode: cfg.Provider.Mode, Checks: checks}

	if MachineMode() {
		if err := WriteJSONSuccess(os.Stdout, out); err != nil {
			return err
		}
	} else {
		outputStatusText(out)
	}

	return usableSource(cfg, checks)
}

// healthTarget is one source to check.
type healthTarget struct {
	name    string
	role    string
	checker provider.HealthChecker
}

// checkSources runs the health checks of the configured sources concurrently.
func checkSources(ctx context.Context, cfg *config.Config) ([]HealthCheck, error) {
	var targets []healthTarget
	if cfg.Provider.Mode == config.ProviderModeRemote {
		api, err := provider.NewHTTP(provider.HTTPOptions{
			BaseURL: cfg.Provider.BaseURL,
			Timeout: cfg.Provider.Timeout,
			Logger:  logger.NewEnvLogger("[provider]"),
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, healthTarget{name: api.BaseURL(), role: "primary", checker: api})
		if cfg.Provider.Fallback {
			targets = append(targets, healthTarget{name: "built-in catalog", role: "fallback", checker: provider.NewCatalog(nil)})
		}
	} else {
		targets = append(targets, healthTarget{name: "built-in catalog", role: "primary", checker: provider.NewCatalog(nil)})
	}

	checks := make([]HealthCheck, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			checks[i] = checkHealth(ctx, t)
			return nil
		})
	}
	_ = g.Wait()
	return checks, nil
}

func checkHealth(ctx context.Context, t healthTarget) HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	start := time.Now()
	h, err := t.checker.Health(ctx)
	check := HealthCheck{
		Target:  t.name,
		Role:    t.role,
		Mode:    h.Mode,
		Healthy: err == nil,
		Devices: h.Devices,
		Latency: formatLatency(time.Since(start)),
	}
	if err != nil {
		check.Error = errors.Reason(err)
	}
	return check
}

// usableSource fails when no configured source can serve data.
func usableSource(cfg *config.Config, checks []HealthCheck) error {
	for _, c := range checks {
		if c.Healthy {
			return nil
		}
	}
	return errors.New(errors.ErrProvider,
		"No data source is reachable",
		fmt.Sprintf("Start the device API at %s (try 'stordash serve'), or enable provider.fallback.", cfg.Provider.BaseURL))
}

func outputStatusText(out StatusOutput) {
	where := out.Config
	if where == "" {
		where = "defaults (no config file found)"
	}
	fmt.Print(ui.RenderHeader(ui.HeaderInfo{Title: "status", Source: "config: " + where, Details: "mode: " + out.Mode}))

	rows := make([]ui.HealthRow, len(out.Checks))
	for i, c := range out.Checks {
		detail := c.Latency
		if c.Devices > 0 {
			detail = util.Count(c.Devices, "device", "devices") + ", " + c.Latency
		}
		if !c.Healthy {
			detail = c.Error
		}
		rows[i] = ui.HealthRow{OK: c.Healthy, Target: c.Target, Mode: c.Role, Detail: detail}
	}
	fmt.Println(ui.RenderHealthTable(rows))
}

// formatLatency renders a duration in whole milliseconds.
func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
