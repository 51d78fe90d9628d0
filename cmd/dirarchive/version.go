package main

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// Build information populated at init() from debug.ReadBuildInfo().
var (
	Version   = "unknown"
	GoVersion = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
	Modified  bool
)

func init() {
	parseBuildInfo()
}

func parseBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	Version = info.Main.Version
	GoVersion = info.GoVersion

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			Commit = setting.Value
		case "vcs.time":
			BuildTime = setting.Value
		case "vcs.modified":
			Modified = setting.Value == "true"
		}
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "dirarchive %s (%s)\n", Version, GoVersion)
	if Commit == "unknown" {
		return
	}

	commit := Commit
	if Modified {
		commit += " (dirty)"
	}
	fmt.Fprintf(w, "commit: %s\n", commit)
	if BuildTime != "unknown" {
		fmt.Fprintf(w, "built: %s\n", BuildTime)
	}
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print version information",
	Action: func(ctx context.Context, command *cli.Command) error {
		printVersion(command.Root().Writer)
		return nil
	},
}
