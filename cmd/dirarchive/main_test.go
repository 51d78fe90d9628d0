package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"

	"github.com/infracollect/dirarchive/internal/archive"
)

func TestOutcomeExit(t *testing.T) {
	require.NoError(t, outcomeExit("compress", "/data", archive.Success))

	tests := []struct {
		outcome  archive.Outcome
		exitCode int
	}{
		{archive.SourceDirNotFound, 1},
		{archive.EmptySourcePath, 2},
		{archive.ExistingOutputDeleteFailed, 3},
		{archive.CompressFailed, 4},
		{archive.ExtractFailed, 5},
		{archive.NotAnArchiveFile, 6},
		{archive.ArchiveNotFound, 7},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			err := outcomeExit("extract", "/data/site.tar", tt.outcome)

			var exitErr cli.ExitCoder
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.exitCode, exitErr.ExitCode())
			assert.Contains(t, err.Error(), `extract "/data/site.tar"`)
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	type job struct {
		Name  string `validate:"required"`
		Level int    `validate:"min=-2,max=9"`
	}

	err := validator.New().Struct(job{Level: 12})
	formatted := formatValidationError(err)

	assert.Contains(t, formatted.Error(), "job file has 2 validation error(s):")
	assert.Contains(t, formatted.Error(), "job.Name: failed 'required' validation")
	assert.Contains(t, formatted.Error(), "job.Level: failed 'max' validation (param: 9)")

	plain := errors.New("boom")
	assert.Equal(t, plain, formatValidationError(plain))
}

func TestCreateLogger(t *testing.T) {
	logger, level, err := createLogger(false, "warn", true)
	require.NoError(t, err)
	assert.Equal(t, "warn", level.String())
	assert.NotNil(t, logger)

	_, level, err = createLogger(true, "error", false)
	require.NoError(t, err)
	assert.Equal(t, "debug", level.String(), "debug overrides the level")

	_, _, err = createLogger(false, "loud", false)
	assert.ErrorContains(t, err, "invalid log level loud")
}

func TestLoggerContext(t *testing.T) {
	ctx := t.Context()
	assert.Nil(t, tryLogger(ctx))
	assert.Panics(t, func() { getLogger(ctx) })
	assert.False(t, isInteractive(ctx))

	logger := zaptest.NewLogger(t)
	ctx = withInteractive(withLogger(ctx, logger), true)
	assert.Same(t, logger, getLogger(ctx))
	assert.True(t, isInteractive(ctx))
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	assert.Contains(t, buf.String(), "dirarchive ")
}

func TestReadJobFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: ArchiveJob"), 0o644))

	data, err := readJobFile(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "kind: ArchiveJob", string(data))

	_, err = readJobFile(t.Context(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// runApp runs a fresh command tree so parsed flag values never leak between tests.
func runApp(t *testing.T, commands []*cli.Command, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:           "dirarchive",
		Commands:       commands,
		Writer:         &bytes.Buffer{},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	ctx := withLogger(t.Context(), zaptest.NewLogger(t))
	return app.Run(ctx, append([]string{"dirarchive"}, args...))
}

func TestCompressAndExtractCommands(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "css", "app.css"), []byte("body{}"), 0o644))

	err := runApp(t, []*cli.Command{compressCommand}, "compress", "--keep-source", "--method", "zstd", src)
	require.NoError(t, err)
	assert.FileExists(t, src+".zip")
	assert.DirExists(t, src)

	restored := filepath.Join(root, "restored")
	err = runApp(t, []*cli.Command{extractCommand}, "extract", "--output", restored, src+".zip")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(restored, "css", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}
