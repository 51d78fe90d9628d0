package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	v1 "github.com/infracollect/dirarchive/apis/v1"
	"github.com/infracollect/dirarchive/internal/runner"
)

// Flags and arguments keep their parsed value, so each command gets its own.
func allowedEnvFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "allowed-env",
		Usage: "Environment variables allowed in job templates (can be repeated)",
	}
}

func jobArgument() cli.Argument {
	return &cli.StringArg{
		Name:      "job",
		UsageText: "The job file, or - to read it from stdin",
	}
}

// readJobFile reads the job from path, or from stdin when path is "-".
func readJobFile(_ context.Context, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// loadJob reads, validates and expands the job named by the command's job argument.
func loadJob(ctx context.Context, command *cli.Command) (v1.ArchiveJob, error) {
	jobFilename := command.StringArg("job")
	if jobFilename == "" {
		return v1.ArchiveJob{}, fmt.Errorf("no job file provided")
	}

	data, err := readJobFile(ctx, jobFilename)
	if err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to read job file '%s': %w", jobFilename, err)
	}

	job, err := runner.ParseArchiveJob(data)
	if err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("job file '%s' is invalid: %w", jobFilename, formatValidationError(err))
	}

	variables, err := runner.BuildVariables(job, command.StringSlice("allowed-env"))
	if err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to build variables: %w", err)
	}

	if err := runner.ExpandTemplates(&job, variables); err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to expand templates: %w", err)
	}

	return job, nil
}
