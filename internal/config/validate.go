package config

import (
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/refresh"
	"github.com/rileyhilliard/stordash/internal/table"
)

const (
	// MinRefreshInterval keeps background polling from hammering the API.
	MinRefreshInterval = time.Second
	// MaxPageSize bounds tables.page_size.
	MaxPageSize = 100
	// MaxRetries bounds provider.retries.
	MaxRetries = 10
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but stordash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest stordash release.")
	}

	checks := []struct {
		section string
		check   func() error
	}{
		{"provider", func() error { return validateProvider(cfg.Provider) }},
		{"refresh", func() error { return validateRefresh(cfg.Refresh) }},
		{"tables", func() error { return validateTables(cfg.Tables) }},
		{"compare", func() error { return validateCompare(cfg.Compare) }},
		{"server", func() error { return validateServer(cfg.Server) }},
		{"output", func() error { return validateOutput(cfg.Output) }},
	}
	for _, c := range checks {
		if err := c.check(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
				fmt.Sprintf("Check the '%s' section in your %s.", c.section, ConfigFileName))
		}
	}

	return nil
}

func validateProvider(p ProviderConfig) error {
	switch p.Mode {
	case ProviderModeCatalog, "":
	case ProviderModeRemote:
		if p.BaseURL == "" {
			return fmt.Errorf("provider.base_url is required when provider.mode is 'remote'")
		}
	default:
		return fmt.Errorf("provider.mode '%s' isn't valid - use 'catalog' or 'remote'", p.Mode)
	}

	if p.BaseURL != "" {
		u, err := url.Parse(p.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("provider.base_url '%s' needs to be an http(s) URL like 'http://localhost:3000'", p.BaseURL)
		}
	}

	if p.Timeout <= 0 {
		return fmt.Errorf("provider.timeout needs to be positive (got %v)", p.Timeout)
	}
	if p.Retries < 0 || p.Retries > MaxRetries {
		return fmt.Errorf("provider.retries needs to be 0-%d (got %d)", MaxRetries, p.Retries)
	}
	return nil
}

func validateRefresh(r RefreshConfig) error {
	if r.Interval < MinRefreshInterval {
		return fmt.Errorf("refresh.interval '%v' is too short - use at least %v", r.Interval, MinRefreshInterval)
	}
	return nil
}

func validateTables(t TablesConfig) error {
	if t.PageSize < 1 || t.PageSize > MaxPageSize {
		return fmt.Errorf("tables.page_size needs to be 1-%d (got %d)", MaxPageSize, t.PageSize)
	}
	if _, err := table.ParseMode(t.SortMode); err != nil {
		return fmt.Errorf("tables.sort_mode: %w", err)
	}

	columns := make(map[device.Category][]string)
	for _, tc := range refresh.DefaultTables() {
		columns[tc.Category] = tc.Columns
	}
	for name, s := range t.Sort {
		cat, err := device.ParseCategory(name)
		if err != nil {
			return fmt.Errorf("tables.sort: %w", err)
		}
		if !slices.Contains(columns[cat], s.Key) {
			return fmt.Errorf("tables.sort.%s.key '%s' isn't a column of that table - try one of: %v", name, s.Key, columns[cat])
		}
		if s.Direction != "" {
			if _, err := table.ParseDirection(string(s.Direction)); err != nil {
				return fmt.Errorf("tables.sort.%s.direction: %w", name, err)
			}
		}
	}
	return nil
}

func validateCompare(c CompareConfig) error {
	if c.Threshold < 0 || c.Threshold >= 1 {
		return fmt.Errorf("compare.threshold needs to be at least 0 and below 1 (got %g)", c.Threshold)
	}
	return nil
}

func validateServer(s ServerConfig) error {
	if s.Listen == "" {
		return fmt.Errorf("server.listen can't be empty - try ':3000'")
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
