package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_Values(t *testing.T) {
	expected := map[Outcome]int{
		Success:                    0,
		SourceDirNotFound:          -1,
		EmptySourcePath:            -2,
		ExistingOutputDeleteFailed: -3,
		CompressFailed:             -4,
		ExtractFailed:              -5,
		NotAnArchiveFile:           -6,
		ArchiveNotFound:            -7,
	}

	for outcome, value := range expected {
		assert.Equal(t, value, int(outcome), "outcome %s", outcome)
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "NotAnArchiveFile", NotAnArchiveFile.String())
	assert.Equal(t, "Outcome(-42)", Outcome(-42).String())
}

func TestOutcome_Err(t *testing.T) {
	assert.True(t, Success.OK())
	require.NoError(t, Success.Err())

	failures := map[Outcome]error{
		SourceDirNotFound:          ErrSourceDirNotFound,
		EmptySourcePath:            ErrEmptySourcePath,
		ExistingOutputDeleteFailed: ErrExistingOutputDeleteFailed,
		CompressFailed:             ErrCompressFailed,
		ExtractFailed:              ErrExtractFailed,
		NotAnArchiveFile:           ErrNotAnArchiveFile,
		ArchiveNotFound:            ErrArchiveNotFound,
	}
	for outcome, sentinel := range failures {
		assert.False(t, outcome.OK(), "outcome %s", outcome)
		assert.ErrorIs(t, outcome.Err(), sentinel, "outcome %s", outcome)
	}

	require.Error(t, Outcome(-42).Err())
}
