package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/stordash/internal/config"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/ui"
)

// configShowCommand prints the effective config: file values merged with
// defaults and environment overrides.
func configShowCommand() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if MachineMode() {
		return WriteJSONSuccess(os.Stdout, cfg)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(ui.MutedStyle().Render("# no config file found, showing defaults"))
	} else {
		fmt.Println(ui.MutedStyle().Render("# " + path))
	}
	fmt.Print(string(data))
	return nil
}

// configSetCommand updates one key in the config file, keeping its comments.
func configSetCommand(key, value string) error {
	path, err := config.Find(Config())
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'stordash init' to create one first.")
	}

	if err := config.Set(path, key, value); err != nil {
		return err
	}
	fmt.Printf("%s Set %s = %s in %s\n", ui.SymbolSuccess, key, value, path)
	return nil
}
