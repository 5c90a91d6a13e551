package cli

import (
	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/refresh"
	"github.com/rileyhilliard/stordash/internal/table"
	"github.com/rileyhilliard/stordash/internal/ui"
)

// loadConfig finds, loads and validates the config, then applies its
// color setting. With no config file the defaults are used.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}

	mode := cfg.Output.Color
	if noColor {
		mode = ui.ColorModeNever
	}
	ui.ApplyColorMode(mode, stdoutIsTerminal())

	return cfg, path, nil
}

// newProvider builds the data provider the config selects. Remote mode
// wraps the API in the catalog fallback when enabled.
func newProvider(cfg *config.Config, log logger.Logger) (provider.Provider, error) {
	if cfg.Provider.Mode != config.ProviderModeRemote {
		return provider.NewCatalog(nil), nil
	}

	api, err := provider.NewHTTP(provider.HTTPOptions{
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout,
		Retries: cfg.Provider.Retries,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	if !cfg.Provider.Fallback {
		return api, nil
	}
	return provider.NewFallback(api, provider.NewCatalog(nil), log), nil
}

// controllerOptions maps the config onto refresh options.
func controllerOptions(cfg *config.Config) (refresh.Options, error) {
	opts := refresh.DefaultOptions()
	opts.PageSize = cfg.Tables.PageSize
	opts.Interval = cfg.Refresh.Interval
	opts.Background = cfg.Refresh.Background
	opts.Comparator = metrics.Comparator{Threshold: cfg.Compare.Threshold}

	mode, err := table.ParseMode(cfg.Tables.SortMode)
	if err != nil {
		return opts, errors.WrapWithCode(err, errors.ErrConfig,
			err.Error(),
			"Set tables.sort_mode to 'server' or 'local'.")
	}
	opts.Mode = mode

	opts.Sorts = make(map[device.Category]table.SortConfig, len(cfg.Tables.Sort))
	for name, s := range cfg.Tables.Sort {
		cat, err := device.ParseCategory(name)
		if err != nil {
			return opts, errors.WrapWithCode(err, errors.ErrConfig,
				err.Error(),
				"Use one of: overview, sustainability, performance, features.")
		}
		dir := table.Desc
		if s.Direction != "" {
			if dir, err = table.ParseDirection(string(s.Direction)); err != nil {
				return opts, errors.WrapWithCode(err, errors.ErrConfig,
					err.Error(),
					"Use 'asc' or 'desc'.")
			}
		}
		opts.Sorts[cat] = table.SortConfig{Key: s.Key, Direction: dir}
	}

	return opts, nil
}

// tableConfig returns the dashboard table for category.
func tableConfig(category device.Category) (refresh.TableConfig, bool) {
	for _, t := range refresh.DefaultTables() {
		if t.Category == category {
			return t, true
		}
	}
	return refresh.TableConfig{}, false
}
