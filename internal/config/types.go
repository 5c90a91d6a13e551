package config

import (
	"time"

	"github.com/rileyhilliard/stordash/internal/table"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Provider modes.
const (
	ProviderModeCatalog = "catalog"
	ProviderModeRemote  = "remote"
)

// Config represents the complete .stordash.yaml configuration file.
type Config struct {
	Version  int            `yaml:"version" mapstructure:"version"`
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
	Refresh  RefreshConfig  `yaml:"refresh" mapstructure:"refresh"`
	Tables   TablesConfig   `yaml:"tables" mapstructure:"tables"`
	Compare  CompareConfig  `yaml:"compare" mapstructure:"compare"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// ProviderConfig selects where device data comes from.
type ProviderConfig struct {
	// Mode is "catalog" (built-in devices) or "remote" (device API).
	Mode string `yaml:"mode" mapstructure:"mode"`

	// BaseURL is the device API root. Supports ${VAR} expansion.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Retries is the number of extra attempts after a failed request.
	Retries int `yaml:"retries" mapstructure:"retries"`

	// Fallback serves the built-in catalog when the remote API fails. Off
	// unless configured, so an unreachable API surfaces as an error.
	Fallback bool `yaml:"fallback" mapstructure:"fallback"`
}

// RefreshConfig controls timed background refresh.
type RefreshConfig struct {
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
	Background bool          `yaml:"background" mapstructure:"background"`
}

// TablesConfig controls sorting and pagination.
type TablesConfig struct {
	PageSize int `yaml:"page_size" mapstructure:"page_size"`

	// SortMode is "server" (refetch on sort) or "local" (sort in memory).
	SortMode string `yaml:"sort_mode" mapstructure:"sort_mode"`

	// Sort holds the initial sort per table, keyed by table name.
	Sort map[string]table.SortConfig `yaml:"sort" mapstructure:"sort"`
}

// CompareConfig tunes the comparison classifier.
type CompareConfig struct {
	// Threshold is the fraction of the baseline inside which a value
	// counts as level with it.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// ServerConfig controls 'stordash serve'.
type ServerConfig struct {
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Provider: ProviderConfig{
			Mode:     ProviderModeCatalog,
			BaseURL:  "http://localhost:3000",
			Timeout:  5 * time.Second,
			Retries:  2,
			Fallback: false,
		},
		Refresh: RefreshConfig{
			Interval:   30 * time.Second,
			Background: true,
		},
		Tables: TablesConfig{
			PageSize: table.DefaultPageSize,
			SortMode: "server",
			Sort: map[string]table.SortConfig{
				"overview":       {Key: "deviceScore", Direction: table.Desc},
				"sustainability": {Key: "greenScore", Direction: table.Desc},
				"performance":    {Key: "score", Direction: table.Desc},
				"features":       {Key: "featureScore", Direction: table.Desc},
			},
		},
		Compare: CompareConfig{
			Threshold: 0.05,
		},
		Server: ServerConfig{
			Listen: ":3000",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
