package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	v1 "github.com/infracollect/dirarchive/apis/v1"
	"github.com/infracollect/dirarchive/internal/codec/zipcodec"
	"github.com/infracollect/dirarchive/internal/engine"
	"github.com/infracollect/dirarchive/internal/engine/encoders"
	"github.com/infracollect/dirarchive/internal/engine/sinks"
)

func createPipeline(ctx context.Context, logger *zap.Logger, registry *engine.Registry, env engine.Env, job v1.ArchiveJob) (*engine.Pipeline, error) {
	logger.Info("creating pipeline", zap.String("job_name", job.Metadata.Name), zap.Int("tasks", len(job.Spec.Tasks)))

	pipeline := engine.NewPipeline(job.Metadata.Name, logger)
	pipeline.SetConcurrency(job.Spec.Concurrency)

	for _, taskSpec := range job.Spec.Tasks {
		resolved, err := ResolveTaskSpec(taskSpec)
		if err != nil {
			return nil, err
		}

		task, err := registry.CreateTask(ctx, resolved.Kind, taskSpec.ID, env, resolved.Spec)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s task %q: %w", resolved.Kind, taskSpec.ID, err)
		}

		if err := pipeline.AddTask(taskSpec.ID, task); err != nil {
			return nil, fmt.Errorf("failed to add %s task: %w", resolved.Kind, err)
		}

		logger.Debug("created task", zap.String("task_id", taskSpec.ID), zap.String("task_kind", resolved.Kind))
	}

	return pipeline, nil
}

// buildCodec creates the zip codec from the codec spec.
// Defaults to deflate at the default level if no codec is specified.
func buildCodec(spec *v1.CodecSpec) (*zipcodec.Codec, error) {
	if spec == nil {
		return zipcodec.Default(), nil
	}

	level := flate.DefaultCompression
	if spec.Level != nil {
		level = *spec.Level
	}

	codec, err := zipcodec.New(spec.Method, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create zip codec: %w", err)
	}

	return codec, nil
}

// buildPublisher creates the sink produced archives are published to.
// Returns a nil sink when the job has no publish target.
func buildPublisher(ctx context.Context, registry *engine.Registry, job v1.ArchiveJob) (engine.Sink, error) {
	if job.Spec.Publish == nil {
		return nil, nil
	}

	resolved, err := ResolvePublishSpec(*job.Spec.Publish)
	if err != nil {
		return nil, err
	}

	sink, err := registry.CreateSink(ctx, resolved.Kind, resolved.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s sink: %w", resolved.Kind, err)
	}

	return sink, nil
}

// buildEncoder creates the report encoder.
// Defaults to compact JSON if no report is specified.
func buildEncoder(report *v1.ReportSpec) (engine.Encoder, error) {
	if report == nil {
		return encoders.NewJSONEncoder(""), nil
	}

	return encoders.New(report.Format, report.Indent)
}

// buildReportSink returns where the report is written and under which name.
//
// Default behavior:
//   - No report spec or no path: stream sink on stdout
//   - Path set: filesystem sink rooted at the path's directory
func buildReportSink(fs afero.Fs, stdout io.Writer, report *v1.ReportSpec) (engine.Sink, string, error) {
	if report == nil || report.Path == "" {
		return sinks.NewStreamSink(stdout), "", nil
	}

	sink, err := sinks.NewFilesystemSinkFromPath(fs, filepath.Dir(report.Path))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create report sink: %w", err)
	}

	return sink, filepath.Base(report.Path), nil
}

// BuildVariables creates the variables map for expansion.
// It includes built-in variables and reads allowed environment variables.
// If a variable is not set, an error is returned.
func BuildVariables(job v1.ArchiveJob, allowedEnv []string) (map[string]string, error) {
	date := time.Now().UTC()
	variables := map[string]string{
		"JOB_NAME":         job.Metadata.Name,
		"JOB_DATE_ISO8601": date.Format(engine.ISO8601Basic),
		"JOB_DATE_RFC3339": date.Format(time.RFC3339),
	}

	var errs error
	for _, envName := range allowedEnv {
		val, ok := os.LookupEnv(envName)
		if !ok {
			errs = errors.Join(errs, fmt.Errorf("environment variable %q is not set", envName))
			continue
		}
		variables[envName] = val
	}

	if errs != nil {
		return nil, errs
	}

	return variables, nil
}
