package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Validate a job file",
	Flags:     []cli.Flag{allowedEnvFlag()},
	Arguments: []cli.Argument{jobArgument()},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx).With(zap.String("job_filename", command.StringArg("job")))
		logger.Debug("validating job file")

		job, err := loadJob(ctx, command)
		if err != nil {
			return err
		}

		logger.Info("job file is valid", zap.String("job_name", job.Metadata.Name), zap.Int("tasks", len(job.Spec.Tasks)))
		if isInteractive(ctx) {
			fmt.Fprintf(command.Root().Writer, "✓ Job file '%s' is valid\n", command.StringArg("job"))
		}
		return nil
	},
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "job file has %d validation error(s):", len(validationErrs))
	for _, fe := range validationErrs {
		fmt.Fprintf(&sb, "\n  • %s: failed '%s' validation", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			fmt.Fprintf(&sb, " (param: %s)", fe.Param())
		}
	}
	return errors.New(sb.String())
}
