package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/stordash/internal/device"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionShort bool

// VersionInfo is the build description printed by 'stordash version'.
type VersionInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Built    string `json:"built"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
	// CatalogDevices is the size of the built-in catalog compiled into
	// this binary.
	CatalogDevices int `json:"catalogDevices"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash and build date of stordash, along with
the size of the built-in device catalog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), currentVersion(), versionShort, MachineMode())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	versionCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")
}

func currentVersion() VersionInfo {
	return VersionInfo{
		Version:        version,
		Commit:         commit,
		Built:          date,
		Go:             runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		CatalogDevices: len(device.Catalog()),
	}
}

func writeVersion(w io.Writer, info VersionInfo, short, asJSON bool) error {
	switch {
	case asJSON:
		return WriteJSONSuccess(w, info)
	case short:
		_, err := fmt.Fprintln(w, info.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "stordash %s\ncommit: %s\nbuilt: %s\ngo: %s\nos/arch: %s\ncatalog: %d devices\n",
		formatVersion(info.Version), info.Commit, info.Built, info.Go, info.Platform, info.CatalogDevices)
	return err
}

// formatVersion adds the 'v' prefix to release versions.
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
