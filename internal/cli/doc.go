// Package cli implements the stordash command-line interface.
//
// Command variables and flag registration live in commands.go. Each
// command delegates to a function in its own file, which loads the config,
// builds a provider and hands off to the refresh controller or the server.
//
// # Command Structure
//
// The root command "stordash" opens the dashboard:
//
//	stordash                 - Interactive dashboard (same as 'stordash dashboard')
//	stordash list            - Print one table and exit
//	stordash serve           - Run the demo device API
//	stordash status          - Check the configured data sources
//	stordash init            - Create .stordash.yaml
//	stordash config show|set - Inspect or edit the config
//
// # Output Modes
//
// list, status and config show accept --json. In that mode results and
// errors are written as a JSONEnvelope on stdout instead of styled text,
// so scripts get a stable shape and a machine-readable error code.
//
// # Flag Handling
//
// Global flags (--config, --no-color, --log-file) are defined on the root
// command. --interval is registered on both the root and dashboard
// commands so 'stordash --interval 1m' works without the subcommand.
package cli
