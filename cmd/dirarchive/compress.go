package main

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/archive"
	"github.com/infracollect/dirarchive/internal/codec/zipcodec"
)

var compressCommand = &cli.Command{
	Name:  "compress",
	Usage: "Compress a directory into a zip archive next to it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Existing archive file to replace (ignored unless the file exists)",
		},
		&cli.BoolFlag{
			Name:    "keep-source",
			Aliases: []string{"k"},
			Usage:   "Keep the source directory after archiving",
		},
		&cli.StringFlag{
			Name:  "method",
			Value: string(zipcodec.MethodDeflate),
			Usage: "Entry compression method (deflate, store, zstd)",
		},
		&cli.IntFlag{
			Name:  "level",
			Value: flate.DefaultCompression,
			Usage: "Deflate level, -2 (huffman only) to 9",
		},
	},
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "source",
			UsageText: "The directory to compress",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx).Named("archiver")

		codec, err := zipcodec.New(command.String("method"), command.Int("level"))
		if err != nil {
			return fmt.Errorf("failed to create zip codec: %w", err)
		}

		source := command.StringArg("source")
		archiver := archive.New(archive.WithCodec(codec), archive.WithLogger(logger))
		target := archiver.ResolveDestination(source, command.String("output"))

		outcome := archiver.Compress(archive.CompressRequest{
			SourceDirectory: source,
			DestinationPath: command.String("output"),
			KeepSource:      command.Bool("keep-source"),
		})
		if err := outcomeExit("compress", source, outcome); err != nil {
			return err
		}

		logger.Info("compressed directory", zap.String("source", source), zap.String("archive", target))
		if isInteractive(ctx) {
			fmt.Fprintf(command.Root().Writer, "✓ %s -> %s\n", source, target)
		}
		return nil
	},
}
