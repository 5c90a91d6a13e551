package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/dashboard"
	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/refresh"
)

// dashboardCommand starts the TUI dashboard. When stdout isn't a terminal
// it prints the first page of every table instead.
func dashboardCommand(intervalFlag string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if intervalFlag != "" {
		interval, err := ParseInterval(intervalFlag)
		if err != nil {
			return err
		}
		cfg.Refresh.Interval = interval
	}

	if !stdoutIsTerminal() {
		return printAllTables(cfg)
	}

	// The alt screen owns the terminal, so log output goes to a file or nowhere.
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "stordash")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrUI,
				"Can't open log file "+logFile,
				"Check the directory exists and is writable.")
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p, err := newProvider(cfg, logger.NewEnvLogger("[provider]"))
	if err != nil {
		return err
	}
	opts, err := controllerOptions(cfg)
	if err != nil {
		return err
	}

	bridge := &dashboard.Bridge{}
	opts.Logger = logger.NewEnvLogger("[refresh]")
	opts.OnChange = bridge.Notify

	ctrl, err := refresh.New(p, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program := tea.NewProgram(dashboard.NewModel(ctx, ctrl), tea.WithAltScreen())
	bridge.Attach(program)

	ctrl.Start(ctx)
	_, err = program.Run()

	// Stop background refresh before the terminal is handed back
	cancel()
	ctrl.Stop()

	if err != nil {
		return errors.WrapWithCode(err, errors.ErrUI,
			"Dashboard exited unexpectedly",
			"Try 'stordash list' for plain output, or pass --log-file to capture details.")
	}
	return nil
}

// printAllTables renders the first page of every table as plain text.
func printAllTables(cfg *config.Config) error {
	var sections []string
	for _, cat := range device.Categories {
		out, err := renderList(context.Background(), cfg, listOptions{Table: string(cat), Page: 1})
		if err != nil {
			return err
		}
		sections = append(sections, out)
	}
	fmt.Print(strings.Join(sections, "\n"))
	return nil
}

// ParseInterval parses a --interval flag value. Intervals under a second
// are rejected.
func ParseInterval(flag string) (time.Duration, error) {
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 10s, 1m, or 5m.")
	}
	if d < config.MinRefreshInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			fmt.Sprintf("Use at least %s.", config.MinRefreshInterval))
	}
	return d, nil
}
