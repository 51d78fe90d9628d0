package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/archive"
)

var extractCommand = &cli.Command{
	Name:  "extract",
	Usage: "Extract a zip archive into a directory",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Destination directory (default: the archive path without its extension)",
		},
	},
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "archive",
			UsageText: "The zip archive to extract",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx).Named("archiver")

		archivePath := command.StringArg("archive")
		destination := command.String("output")

		outcome := archive.New(archive.WithLogger(logger)).Extract(archive.ExtractRequest{
			ArchivePath:          archivePath,
			DestinationDirectory: destination,
		})
		if err := outcomeExit("extract", archivePath, outcome); err != nil {
			return err
		}

		if destination == "" {
			destination = archive.DefaultExtractDir(archivePath)
		}
		logger.Info("extracted archive", zap.String("archive", archivePath), zap.String("destination", destination))
		if isInteractive(ctx) {
			fmt.Fprintf(command.Root().Writer, "✓ %s -> %s\n", archivePath, destination)
		}
		return nil
	},
}
