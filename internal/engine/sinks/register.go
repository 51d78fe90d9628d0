package sinks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	v1 "github.com/infracollect/dirarchive/apis/v1"
	"github.com/infracollect/dirarchive/internal/engine"
)

// Register registers the publish sink factories with the registry. Filesystem sinks are
// rooted on fs.
func Register(registry *engine.Registry, fs afero.Fs) {
	registry.RegisterSink(S3SinkKind, engine.NewSinkFactory(S3SinkKind, newS3Sink))
	registry.RegisterSink(FilesystemSinkKind, engine.NewSinkFactory(FilesystemSinkKind,
		func(ctx context.Context, logger *zap.Logger, spec *v1.FilesystemPublish) (engine.Sink, error) {
			return newFilesystemSink(ctx, logger, fs, spec)
		},
	))
}

func newS3Sink(ctx context.Context, logger *zap.Logger, spec *v1.S3Publish) (engine.Sink, error) {
	cfg := S3Config{
		Bucket:         spec.Bucket,
		ForcePathStyle: spec.ForcePathStyle,
	}

	if spec.Region != nil {
		cfg.Region = *spec.Region
	}

	if spec.Endpoint != nil {
		cfg.Endpoint = *spec.Endpoint
	}

	if spec.Prefix != nil {
		cfg.Prefix = *spec.Prefix
	}

	if spec.Credentials != nil {
		cfg.AccessKeyID = spec.Credentials.AccessKeyID
		cfg.SecretAccessKey = spec.Credentials.SecretAccessKey
	}

	logger.Debug("creating s3 sink", zap.String("bucket", cfg.Bucket), zap.String("prefix", cfg.Prefix))

	return NewS3Sink(ctx, cfg)
}

func newFilesystemSink(_ context.Context, logger *zap.Logger, fs afero.Fs, spec *v1.FilesystemPublish) (engine.Sink, error) {
	var path, prefix string
	if spec.Path != nil {
		path = *spec.Path
	}
	if spec.Prefix != nil {
		prefix = *spec.Prefix
	}

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}

	root := filepath.Join(path, prefix)
	logger.Debug("creating filesystem sink", zap.String("root", root))

	return NewFilesystemSinkFromPath(fs, root)
}
