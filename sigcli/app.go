// Package sigcli wires the scan engine (sigtree, sigdefs, sigio) into a
// urfave/cli command-line interface.
package sigcli

import (
	"github.com/urfave/cli/v2"

	"github.com/corvid-labs/sigscan/version"
)

// NewApp builds the sigscan CLI application.
func NewApp() *cli.App {
	defsFlag := &cli.StringFlag{
		Name:    "defs",
		Aliases: []string{"d"},
		Usage:   "Signature definitions file (.txt, .toml, or .json)",
	}
	return &cli.App{
		Name:                   "sigscan",
		Usage:                  "Scan byte streams for registered literal signatures",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			{
				Name:      "scan",
				Usage:     "Scan one or more files for registered signatures",
				ArgsUsage: "<glob> [<glob>...]",
				Flags: []cli.Flag{
					defsFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output results as JSON",
					},
					&cli.IntFlag{
						Name:  "parallel",
						Usage: "Maximum concurrent file scans (0 = unlimited)",
					},
				},
				Action: scanCommand,
			},
			{
				Name:   "list",
				Usage:  "Load and print the registered signature table",
				Flags:  []cli.Flag{defsFlag},
				Action: listCommand,
			},
			{
				Name:      "watch",
				Usage:     "Watch a directory and rescan changed files",
				ArgsUsage: "<directory>",
				Flags: []cli.Flag{
					defsFlag,
					&cli.IntFlag{
						Name:  "debounce-ms",
						Usage: "Debounce window for batching file-change events",
						Value: 100,
					},
				},
				Action: watchCommand,
			},
			{
				Name:   "validate-defs",
				Usage:  "Load definitions and report compiled anchor-group sizes without scanning",
				Flags:  []cli.Flag{defsFlag},
				Action: validateDefsCommand,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON Schema for the JSON definitions format",
				Action: schemaCommand,
			},
		},
	}
}
