package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/ui"
)

// Environment variables read by init. The provider variables are the same
// ones that override a loaded config.
const (
	envProviderMode    = config.EnvPrefix + "_PROVIDER_MODE"
	envProviderBaseURL = config.EnvPrefix + "_PROVIDER_BASE_URL"
	envNonInteractive  = config.EnvPrefix + "_NON_INTERACTIVE"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Config file to write; defaults to ./.stordash.yaml
	Mode           string // Pre-specified provider mode
	BaseURL        string // Pre-specified device API URL
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// getInitDefaults reads init defaults from the environment.
func getInitDefaults() InitOptions {
	nonInteractive := os.Getenv(envNonInteractive)
	return InitOptions{
		Mode:           os.Getenv(envProviderMode),
		BaseURL:        os.Getenv(envProviderBaseURL),
		NonInteractive: isTruthy(nonInteractive) || os.Getenv("CI") != "",
	}
}

// mergeInitOptions fills unset flags from the environment.
func mergeInitOptions(opts InitOptions) InitOptions {
	env := getInitDefaults()
	if opts.Mode == "" {
		opts.Mode = env.Mode
	}
	if opts.BaseURL == "" {
		opts.BaseURL = env.BaseURL
	}
	opts.NonInteractive = opts.NonInteractive || env.NonInteractive
	return opts
}

func isTruthy(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && v
}

// Init creates a new .stordash.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := opts.Path
	if configPath == "" {
		configPath = filepath.Join(".", config.ConfigFileName)
	}

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Mode != "" {
		cfg.Provider.Mode = opts.Mode
	}
	if opts.BaseURL != "" {
		cfg.Provider.BaseURL = opts.BaseURL
	}

	if !opts.NonInteractive {
		if err := runInitForm(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  stordash          - Open the dashboard")
	fmt.Println("  stordash status   - Check the data source")
	if cfg.Provider.Mode == config.ProviderModeRemote {
		fmt.Println("  stordash serve    - Run the demo device API locally")
	}
	return nil
}

// runInitForm asks for the provider and refresh settings, editing cfg in place.
func runInitForm(cfg *config.Config) error {
	mode := cfg.Provider.Mode
	baseURL := cfg.Provider.BaseURL
	interval := cfg.Refresh.Interval.String()
	pageSize := strconv.Itoa(cfg.Tables.PageSize)
	background := cfg.Refresh.Background

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should device data come from?").
				Options(
					huh.NewOption("Built-in catalog (works offline)", config.ProviderModeCatalog),
					huh.NewOption("Remote device API", config.ProviderModeRemote),
				).
				Value(&mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Device API URL").
				Description("Supports ${VAR} expansion").
				Placeholder("http://localhost:3000").
				Value(&baseURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("the API URL is required in remote mode")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return mode != config.ProviderModeRemote }),
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval").
				Description("How often tables reload in the background").
				Placeholder("30s").
				Value(&interval).
				Validate(func(s string) error {
					_, err := ParseInterval(s)
					if err != nil {
						return fmt.Errorf("use a duration of at least %s, like 30s or 2m", config.MinRefreshInterval)
					}
					return nil
				}),
			huh.NewInput().
				Title("Rows per page").
				Placeholder("5").
				Value(&pageSize).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > config.MaxPageSize {
						return fmt.Errorf("enter a number from 1 to %d", config.MaxPageSize)
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Refresh in the background?").
				Value(&background),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	cfg.Provider.Mode = mode
	cfg.Provider.BaseURL = strings.TrimSpace(baseURL)
	cfg.Refresh.Background = background
	if d, err := ParseInterval(interval); err == nil {
		cfg.Refresh.Interval = d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(pageSize)); err == nil {
		cfg.Tables.PageSize = n
	}
	return nil
}
