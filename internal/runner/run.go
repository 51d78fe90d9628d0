// Package runner turns an ArchiveJob file into a pipeline run and its report.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	v1 "github.com/infracollect/dirarchive/apis/v1"
	"github.com/infracollect/dirarchive/internal/archive"
	"github.com/infracollect/dirarchive/internal/engine"
	"github.com/infracollect/dirarchive/internal/engine/sinks"
	"github.com/infracollect/dirarchive/internal/engine/tasks"
)

type Runner struct {
	logger     *zap.Logger
	job        v1.ArchiveJob
	runID      string
	pipeline   *engine.Pipeline
	publisher  engine.Sink
	encoder    engine.Encoder
	reportSink engine.Sink
	reportName string
}

var (
	defaultValidator = validator.New(validator.WithRequiredStructEnabled())
)

// ParseArchiveJob parses a YAML or JSON job file and validates it against the tags of
// v1.ArchiveJob.
func ParseArchiveJob(data []byte) (v1.ArchiveJob, error) {
	var job v1.ArchiveJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to unmarshal job data: %w", err)
	}

	if err := defaultValidator.Struct(job); err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to validate job: %w", err)
	}

	return job, nil
}

type options struct {
	fs     afero.Fs
	stdout io.Writer
}

// Option configures a Runner.
type Option func(*options)

// WithFs sets the filesystem tasks, filesystem sinks and report files use.
// If not set, the OS filesystem is used.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithStdout sets where the report goes when it has no path.
// If not set, os.Stdout is used.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

func New(ctx context.Context, logger *zap.Logger, job v1.ArchiveJob, opts ...Option) (*Runner, error) {
	o := options{fs: afero.NewOsFs(), stdout: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("creating runner", zap.String("job_name", job.Metadata.Name))

	registry := engine.NewRegistry(logger)
	tasks.Register(registry)
	sinks.Register(registry, o.fs)

	codec, err := buildCodec(job.Spec.Codec)
	if err != nil {
		return nil, fmt.Errorf("failed to build codec: %w", err)
	}

	publisher, err := buildPublisher(ctx, registry, job)
	if err != nil {
		return nil, fmt.Errorf("failed to build publisher: %w", err)
	}

	env := engine.Env{
		Archiver: archive.New(
			archive.WithFs(o.fs),
			archive.WithCodec(codec),
			archive.WithLogger(logger.Named("archiver")),
		),
		Fs:        o.fs,
		Publisher: publisher,
	}

	pipeline, err := createPipeline(ctx, logger.Named("pipeline"), registry, env, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	encoder, err := buildEncoder(job.Spec.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to build encoder: %w", err)
	}

	reportSink, reportName, err := buildReportSink(o.fs, o.stdout, job.Spec.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to build report sink: %w", err)
	}

	return &Runner{
		logger:     logger,
		job:        job,
		runID:      runID,
		pipeline:   pipeline,
		publisher:  publisher,
		encoder:    encoder,
		reportSink: reportSink,
		reportName: reportName,
	}, nil
}

// Run executes every task, then writes the report. Task failures are part of the report;
// the returned error only covers the run itself.
func (r *Runner) Run(ctx context.Context) (engine.Report, error) {
	defer func() {
		// Use a background context for cleanup to ensure we always attempt cleanup
		// even if the original context was cancelled
		if r.publisher == nil {
			return
		}
		if err := r.publisher.Close(context.Background()); err != nil {
			r.logger.Error("failed to close publisher", zap.String("sink", r.publisher.Name()), zap.Error(err))
		}
	}()

	results, err := r.pipeline.Run(ctx)
	if err != nil {
		return engine.Report{}, fmt.Errorf("failed to run pipeline: %w", err)
	}

	report := engine.NewReport(r.runID, r.job.Metadata.Name, r.pipeline.Date(), results)
	r.logger.Info("pipeline finished", zap.Int("succeeded", report.Succeeded), zap.Int("failed", report.Failed))

	if err := r.WriteReport(ctx, report); err != nil {
		return report, fmt.Errorf("failed to write report: %w", err)
	}

	return report, nil
}

// WriteReport encodes the report to the report sink, and to the publisher when the job asks
// for it.
func (r *Runner) WriteReport(ctx context.Context, report engine.Report) error {
	name := r.reportName
	if name == "" {
		name = report.Name(r.encoder.FileExtension())
	}

	reader, err := r.encoder.EncodeReport(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if r.publisher == nil || r.job.Spec.Report == nil || !r.job.Spec.Report.Publish {
		return errors.Join(r.reportSink.Write(ctx, name, reader), r.reportSink.Close(ctx))
	}

	// The report goes to two sinks, keep a copy for the publisher.
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read encoded report: %w", err)
	}

	if err := r.reportSink.Write(ctx, name, bytes.NewReader(data)); err != nil {
		return err
	}

	if err := r.publisher.Write(ctx, report.Name(r.encoder.FileExtension()), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}

	return r.reportSink.Close(ctx)
}
