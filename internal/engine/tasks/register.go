package tasks

import (
	"context"

	"go.uber.org/zap"

	v1 "github.com/infracollect/dirarchive/apis/v1"
	"github.com/infracollect/dirarchive/internal/engine"
)

func Register(registry *engine.Registry) {
	registry.RegisterTask(
		CompressTaskKind,
		engine.NewTaskFactory(CompressTaskKind, newCompressTask),
	)
	registry.RegisterTask(
		ExtractTaskKind,
		engine.NewTaskFactory(ExtractTaskKind, newExtractTask),
	)
}

func newCompressTask(_ context.Context, logger *zap.Logger, id string, env engine.Env, spec *v1.CompressTask) (engine.Task, error) {
	return NewCompressTask(logger, id, env, CompressConfig{
		Source:      spec.Source,
		Destination: spec.Destination,
		KeepSource:  spec.KeepSource,
	}), nil
}

func newExtractTask(_ context.Context, logger *zap.Logger, id string, env engine.Env, spec *v1.ExtractTask) (engine.Task, error) {
	return NewExtractTask(logger, id, env, ExtractConfig{
		Archive:     spec.Archive,
		Destination: spec.Destination,
	}), nil
}
