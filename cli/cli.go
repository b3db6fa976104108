// Package cli provides the command-line interface for thetawave-sync.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cdsupina/thetawave-sync/ui"
)

// Version is the current version of the application.
var Version = "dev"

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "thetawave-sync",
		Usage:   "Synchronize thetawave assets with pCloud over WebDAV",
		Version: Version,
		Description: `Syncs the data and media trees between the local assets/ directory
   and /thetawave on pCloud's WebDAV endpoint.

   Environment variables:
     PCLOUD_USERNAME - pCloud email (required)
     PCLOUD_PASSWORD - pCloud password (required)`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: silent, error, info, debug, verbose",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("no-color") {
				ui.DisableColors()
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			downloadCommand(),
			uploadCommand(),
			testCommand(),
		},
		// Reached when no subcommand matched: print usage and fail so the
		// process exits non-zero.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cli.ShowAppHelp(cmd)
			if cmd.Args().Len() > 0 {
				return fmt.Errorf("unknown command: %s", cmd.Args().First())
			}
			return errors.New("missing command")
		},
	}

	return app.Run(ctx, args)
}
