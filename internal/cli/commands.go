package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/stordash/internal/errors"
)

// Command-specific flags
var (
	dashboardIntervalFlag string
	listTableFlag         string
	listSortFlag          string
	listAscFlag           bool
	listPageFlag          int
	listAllFlag           bool
	listInsightsFlag      bool
	serveListenFlag       string
	initModeFlag          string
	initBaseURLFlag       string
	initForce             bool
	initNonInteractive    bool
)

// dashboardCmd starts the TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "ui"},
	Short:   "Interactive storage device dashboard",
	Long: `Start an interactive dashboard with the overview, sustainability,
performance, and features tables.

Scores are colored against the collection average. Tables reload in the
background without losing their sort or page. When stdout isn't a
terminal the first page of every table is printed instead.

Keyboard shortcuts:
  q / Ctrl+C    Quit
  r             Reload (retry after an error)
  tab / 1-4     Switch table
  s / S         Sort by next / previous column
  o             Reverse sort order
  up/k down/j   Select device
  left / right  Change page
  Enter         Device details
  m / c / x     Mark device / compare marked / clear marks
  i             Benchmark insights
  b             Pause / resume background refresh
  ?             Show help

Examples:
  stordash dashboard
  stordash dashboard --interval 1m
  stordash dashboard --log-file /tmp/stordash.log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(dashboardIntervalFlag)
	},
}

// listCmd prints one table
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print a device table",
	Long: `Print one page of a device table with rated scores.

Examples:
  stordash list
  stordash list --table performance --sort iops
  stordash list --table sustainability --sort greenScore --asc --page 2
  stordash list --table features --insights
  stordash list --all --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCommand(listOptions{
			Table:    listTableFlag,
			Sort:     listSortFlag,
			Asc:      listAscFlag,
			Page:     listPageFlag,
			All:      listAllFlag,
			Insights: listInsightsFlag,
		})
	},
}

// compareCmd compares devices side by side
var compareCmd = &cobra.Command{
	Use:   "compare <id> <id>...",
	Short: "Compare devices side by side",
	Long: `Compare two or more devices by ID.

Each speed and score is shown as a percentage of the best compared device,
with estimated power draw, running cost, emissions and critical features.
The best device by performance, emissions, features and score per dollar
is listed below the table.

Examples:
  stordash compare 1 6
  stordash compare 1 2 9 --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return compareCommand(args)
	},
}

// serveCmd runs the demo device API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the device catalog over HTTP",
	Long: `Run a device API backed by the built-in catalog.

Serves /storage/devices, /sustainability/metrics, /performance/metrics,
/features/comparison (with sortBy and sortOrder) and /health.

Examples:
  stordash serve
  stordash serve --listen 127.0.0.1:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCommand(serveListenFlag)
	},
}

// initCmd creates a new .stordash.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .stordash.yaml configuration",
	Long: `Create a .stordash.yaml file in the current directory.

Asks where device data comes from and how often to refresh. In CI, or with
--non-interactive, the defaults and flags are used without prompting.

Examples:
  stordash init
  stordash init --mode remote --base-url http://devices.internal:3000
  stordash init --non-interactive --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(mergeInitOptions(InitOptions{
			Mode:           initModeFlag,
			BaseURL:        initBaseURLFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
		}))
	},
}

// statusCmd checks the data sources
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the configured data sources",
	Long: `Run a health check against each configured data source.

In remote mode the device API is checked, along with the built-in catalog
when fallback is enabled. Exits non-zero when no source is usable.

Examples:
  stordash status
  stordash status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand()
	},
}

// configCmd groups the config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration stordash would use: the config file merged
with defaults and STORDASH_* environment overrides.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the config file",
	Long: `Set one dotted key in the config file. Comments are preserved and the
result is validated before it is written.

Examples:
  stordash config set refresh.interval 1m
  stordash config set tables.sort.performance.key iops
  stordash config set provider.mode remote`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(args[0], args[1])
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for stordash.

Examples:
  # Bash
  stordash completion bash > /etc/bash_completion.d/stordash

  # Zsh
  stordash completion zsh > "${fpath[1]}/_stordash"

  # Fish
  stordash completion fish > ~/.config/fish/completions/stordash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrUI,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dashboard flags; the root command opens the dashboard too
	dashboardCmd.Flags().StringVar(&dashboardIntervalFlag, "interval", "", "background refresh interval (e.g., 30s, 1m)")
	rootCmd.Flags().StringVar(&dashboardIntervalFlag, "interval", "", "background refresh interval (e.g., 30s, 1m)")

	// list flags
	listCmd.Flags().StringVarP(&listTableFlag, "table", "t", "overview", "table to print (overview, sustainability, performance, features)")
	listCmd.Flags().StringVarP(&listSortFlag, "sort", "s", "", "column to sort by (default: the table's configured sort)")
	listCmd.Flags().BoolVar(&listAscFlag, "asc", false, "sort ascending")
	listCmd.Flags().IntVarP(&listPageFlag, "page", "p", 1, "page to print")
	listCmd.Flags().BoolVar(&listAllFlag, "all", false, "print every device instead of one page")
	listCmd.Flags().BoolVar(&listInsightsFlag, "insights", false, "compare averages with industry benchmarks")
	listCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")

	// compare flags
	compareCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")

	// serve flags
	serveCmd.Flags().StringVar(&serveListenFlag, "listen", "", "address to listen on (default: server.listen from config)")

	// init flags
	initCmd.Flags().StringVar(&initModeFlag, "mode", "", "provider mode (catalog or remote)")
	initCmd.Flags().StringVar(&initBaseURLFlag, "base-url", "", "device API URL for remote mode")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use defaults")

	// status and config flags
	statusCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")
	configShowCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	// Register all commands
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
