package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cdsupina/thetawave-sync/config"
	"github.com/cdsupina/thetawave-sync/logger"
	"github.com/cdsupina/thetawave-sync/syncer"
	"github.com/cdsupina/thetawave-sync/ui"
	"github.com/cdsupina/thetawave-sync/webdav"
)

// app bundles the wired components a command needs.
type app struct {
	cfg    *config.AppConfig
	log    logger.Logger
	sync   *syncer.Syncer
	client *webdav.Client
}

// setup loads configuration, opens the WebDAV session and wires a syncer.
// Missing credentials or a failed connectivity probe surface here as errors
// that terminate the command with a non-zero exit.
func setup(cmd *cli.Command) (*app, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Logger.Level = config.LogLevel(lvl)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewLogger(&cfg.Logger)

	client, err := webdav.NewClient(&cfg.Remote, &cfg.Transfer, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    log,
		sync:   syncer.NewSyncer(client, &cfg.Sync, &cfg.Transfer, log),
		client: client,
	}, nil
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Recursively download /thetawave/data and /thetawave/media into assets/",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			stats, err := a.sync.DownloadAll(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%d/%d files)\n", ui.Success("Download completed"), stats.Downloaded, stats.Total)
			return nil
		},
	}
}

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload new/changed files from assets/ to pCloud (dry run by default)",
		UsageText: "thetawave-sync upload [--execute]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "execute",
				Usage: "Actually upload files instead of previewing",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			execute := cmd.Bool("execute")

			if !execute {
				fmt.Println(ui.Warning("DRY RUN MODE - No files will be uploaded"))
				fmt.Println("Add --execute to actually upload files")
				fmt.Println()
			}

			a, err := setup(cmd)
			if err != nil {
				return err
			}

			stats, err := a.sync.UploadAll(ctx, execute)
			if err != nil {
				return err
			}

			printUploadSummary(stats, execute)
			return nil
		},
	}
}

// printUploadSummary reports the run's totals. Individual transfer failures
// are already logged; they never affect the exit code.
func printUploadSummary(stats syncer.UploadStats, execute bool) {
	if execute {
		if stats.Uploaded > 0 {
			fmt.Printf("%s: %d files uploaded\n", ui.Success("Upload completed"), stats.Uploaded)
		} else {
			fmt.Println("No files needed uploading - all files are up to date")
		}
		return
	}

	fmt.Println()
	fmt.Println(ui.Header("DRY RUN SUMMARY:"))
	if stats.Uploaded > 0 {
		fmt.Printf("Files that would be uploaded: %d\n", stats.Uploaded)
	}
	if stats.Skipped > 0 {
		fmt.Printf("Files that would be skipped (unchanged): %d\n", stats.Skipped)
	}
	if stats.Uploaded > 0 {
		fmt.Println("To actually upload these files, run:")
		fmt.Println("  thetawave-sync upload --execute")
	} else {
		fmt.Println("No files need uploading - all files are already up to date")
	}
}

func testCommand() *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Test the pCloud connection and list the synchronized directories",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			fmt.Println("Testing pCloud connection...")

			paths := []string{
				a.cfg.Sync.RemoteRoot,
				a.cfg.Sync.RemoteRoot + "/data",
				a.cfg.Sync.RemoteRoot + "/media",
			}
			for _, p := range paths {
				listing, err := a.client.List(ctx, p)
				if err != nil {
					a.log.Error("Failed to list %s: %v", p, err)
				}
				fmt.Printf("Files in %s: %v\n", p, listing.Files)
				fmt.Printf("Directories in %s: %v\n", p, listing.Dirs)
			}

			return nil
		},
	}
}
