package tasks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/archive"
	"github.com/infracollect/dirarchive/internal/engine"
)

const ExtractTaskKind = "extract"

type ExtractConfig struct {
	Archive     string
	Destination string
}

type ExtractTask struct {
	id       string
	cfg      ExtractConfig
	archiver *archive.Archiver
	logger   *zap.Logger
}

var _ engine.Task = (*ExtractTask)(nil)

func NewExtractTask(logger *zap.Logger, id string, env engine.Env, cfg ExtractConfig) *ExtractTask {
	return &ExtractTask{
		id:       id,
		cfg:      cfg,
		archiver: env.Archiver,
		logger:   logger.With(zap.String("task_id", id)),
	}
}

func (t *ExtractTask) Name() string {
	return fmt.Sprintf("extract(%s)", t.cfg.Archive)
}

func (t *ExtractTask) Kind() string {
	return ExtractTaskKind
}

func (t *ExtractTask) Run(_ context.Context) engine.Result {
	start := time.Now()

	outcome := t.archiver.Extract(archive.ExtractRequest{
		ArchivePath:          t.cfg.Archive,
		DestinationDirectory: t.cfg.Destination,
	})

	var target string
	if outcome.OK() {
		target = t.cfg.Destination
		if target == "" {
			target = archive.DefaultExtractDir(t.cfg.Archive)
		}
	}

	return engine.NewResult(ExtractTaskKind, outcome, t.cfg.Archive, target, time.Since(start))
}
