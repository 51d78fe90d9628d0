// Package archive compresses directories into archive files and extracts them back.
//
// Both operations validate their inputs, touch the filesystem, and report a single Outcome.
// Faults raised by the filesystem or the codec never reach the caller: they are logged and
// mapped to the matching failure Outcome.
package archive

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/codec"
)

// CompressRequest describes a Compress call.
type CompressRequest struct {
	// SourceDirectory is the directory to archive.
	SourceDirectory string
	// DestinationPath is used verbatim only when it names an existing file, which is replaced.
	// Otherwise the archive is written next to the source, see DefaultArchivePath.
	DestinationPath string
	// KeepSource leaves SourceDirectory in place. When false the source is removed once the
	// archive has been written.
	KeepSource bool
}

// ExtractRequest describes an Extract call.
type ExtractRequest struct {
	ArchivePath string
	// DestinationDirectory defaults to ArchivePath without its extension.
	DestinationDirectory string
}

// Archiver runs compress and extract operations. It keeps no state between calls and is
// safe for concurrent use on disjoint paths.
type Archiver struct {
	fs     afero.Fs
	codec  codec.Codec
	logger *zap.Logger
}

// New creates an Archiver.
func New(opts ...Option) *Archiver {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}

	return &Archiver{
		fs:     o.fs,
		codec:  o.codec,
		logger: o.logger,
	}
}

// Extension returns the archive extension of the configured codec.
func (a *Archiver) Extension() string {
	return a.codec.Extension()
}

// ResolveDestination returns the path Compress writes to for the given source and destination.
func (a *Archiver) ResolveDestination(sourceDir, destination string) string {
	if destination != "" && a.isFile(destination) {
		return destination
	}
	return DefaultArchivePath(sourceDir, a.codec.Extension())
}

// Compress archives req.SourceDirectory.
func (a *Archiver) Compress(req CompressRequest) Outcome {
	logger := a.logger.With(zap.String("source", req.SourceDirectory))

	if req.SourceDirectory == "" {
		return EmptySourcePath
	}

	isDir, err := afero.IsDir(a.fs, req.SourceDirectory)
	if err != nil || !isDir {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to stat source directory", zap.Error(err))
		}
		return SourceDirNotFound
	}

	destination := a.ResolveDestination(req.SourceDirectory, req.DestinationPath)
	logger = logger.With(zap.String("destination", destination))

	if a.isFile(destination) {
		logger.Debug("removing existing archive")
		if err := a.fs.Remove(destination); err != nil {
			logger.Warn("failed to remove existing archive", zap.Error(err))
			return ExistingOutputDeleteFailed
		}
	}

	if err := a.codec.Compress(a.fs, req.SourceDirectory, destination); err != nil {
		logger.Warn("failed to create archive", zap.Error(err))
		return CompressFailed
	}

	if !req.KeepSource {
		logger.Debug("removing source directory")
		if err := a.fs.RemoveAll(req.SourceDirectory); err != nil {
			logger.Warn("failed to remove source directory", zap.Error(err))
			return ExistingOutputDeleteFailed
		}
	}

	logger.Debug("archive created", zap.Bool("source_kept", req.KeepSource))
	return Success
}

// Extract unpacks req.ArchivePath.
func (a *Archiver) Extract(req ExtractRequest) Outcome {
	logger := a.logger.With(zap.String("archive", req.ArchivePath))

	if req.ArchivePath == "" {
		return EmptySourcePath
	}

	if !a.isFile(req.ArchivePath) {
		return ArchiveNotFound
	}

	if !HasArchiveExtension(req.ArchivePath, a.codec.Extension()) {
		logger.Debug("rejecting file by extension", zap.String("extension", ArchiveExtension(req.ArchivePath)))
		return NotAnArchiveFile
	}

	destination := req.DestinationDirectory
	if destination == "" {
		destination = DefaultExtractDir(req.ArchivePath)
	}
	logger = logger.With(zap.String("destination", destination))

	if err := a.codec.Extract(a.fs, req.ArchivePath, destination); err != nil {
		logger.Warn("failed to extract archive", zap.Error(err))
		return ExtractFailed
	}

	logger.Debug("archive extracted")
	return Success
}

func (a *Archiver) isFile(path string) bool {
	info, err := a.fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
