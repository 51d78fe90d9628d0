package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/runner"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run the compress and extract tasks of a job file",
	Flags:     []cli.Flag{allowedEnvFlag()},
	Arguments: []cli.Argument{jobArgument()},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		job, err := loadJob(ctx, command)
		if err != nil {
			return err
		}

		r, err := runner.New(ctx, logger.Named("runner"), job, runner.WithStdout(command.Root().Writer))
		if err != nil {
			return fmt.Errorf("failed to create runner: %w", err)
		}

		report, err := r.Run(ctx)
		if err != nil {
			return fmt.Errorf("failed to run job: %w", err)
		}

		if report.Failed > 0 {
			return cli.Exit(fmt.Sprintf("%d of %d tasks failed", report.Failed, len(report.Tasks)), 1)
		}

		logger.Info("job completed", zap.String("job_name", job.Metadata.Name), zap.Int("tasks", len(report.Tasks)))
		return nil
	},
}
