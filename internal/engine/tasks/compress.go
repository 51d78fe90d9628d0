// Package tasks adapts archive operations to pipeline tasks.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/archive"
	"github.com/infracollect/dirarchive/internal/engine"
)

const CompressTaskKind = "compress"

type CompressConfig struct {
	Source      string
	Destination string
	KeepSource  bool
}

// CompressTask archives a directory and publishes the archive when the run has a publisher.
type CompressTask struct {
	id       string
	cfg      CompressConfig
	archiver *archive.Archiver
	fs       afero.Fs
	sink     engine.Sink
	logger   *zap.Logger
}

var _ engine.Task = (*CompressTask)(nil)

func NewCompressTask(logger *zap.Logger, id string, env engine.Env, cfg CompressConfig) *CompressTask {
	fs := env.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &CompressTask{
		id:       id,
		cfg:      cfg,
		archiver: env.Archiver,
		fs:       fs,
		sink:     env.Publisher,
		logger:   logger.With(zap.String("task_id", id)),
	}
}

func (t *CompressTask) Name() string {
	return fmt.Sprintf("compress(%s)", t.cfg.Source)
}

func (t *CompressTask) Kind() string {
	return CompressTaskKind
}

func (t *CompressTask) Run(ctx context.Context) engine.Result {
	start := time.Now()
	target := t.archiver.ResolveDestination(t.cfg.Source, t.cfg.Destination)

	outcome := t.archiver.Compress(archive.CompressRequest{
		SourceDirectory: t.cfg.Source,
		DestinationPath: t.cfg.Destination,
		KeepSource:      t.cfg.KeepSource,
	})
	if !outcome.OK() {
		return engine.NewResult(CompressTaskKind, outcome, t.cfg.Source, "", time.Since(start))
	}

	result := engine.NewResult(CompressTaskKind, outcome, t.cfg.Source, target, time.Since(start))
	if t.sink == nil {
		return result
	}

	published, err := t.publish(ctx, target)
	if err != nil {
		t.logger.Error("failed to publish archive", zap.String("archive", target), zap.String("sink", t.sink.Name()), zap.Error(err))
		result.PublishError = err.Error()
	} else {
		result.Published = published
	}
	result.DurationMs = time.Since(start).Milliseconds()

	return result
}

func (t *CompressTask) publish(ctx context.Context, archivePath string) (_ string, err error) {
	f, err := t.fs.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	name := filepath.Base(archivePath)
	if err := t.sink.Write(ctx, name, f); err != nil {
		return "", err
	}

	return t.sink.Name() + "/" + name, nil
}
