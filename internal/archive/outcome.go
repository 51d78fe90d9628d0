package archive

import (
	"errors"
	"fmt"
)

// Outcome is the result kind of an Archiver operation. Zero is success, every failure is a
// distinct negative value. The numeric values are stable and used as process exit codes.
type Outcome int

const (
	Success                    Outcome = 0
	SourceDirNotFound          Outcome = -1
	EmptySourcePath            Outcome = -2
	ExistingOutputDeleteFailed Outcome = -3
	CompressFailed             Outcome = -4
	ExtractFailed              Outcome = -5
	NotAnArchiveFile           Outcome = -6
	ArchiveNotFound            Outcome = -7
)

// Sentinel errors for failure outcomes, see Outcome.Err.
var (
	ErrSourceDirNotFound          = errors.New("source directory not found")
	ErrEmptySourcePath            = errors.New("source path is empty")
	ErrExistingOutputDeleteFailed = errors.New("failed to delete existing output")
	ErrCompressFailed             = errors.New("failed to create archive")
	ErrExtractFailed              = errors.New("failed to extract archive")
	ErrNotAnArchiveFile           = errors.New("not an archive file")
	ErrArchiveNotFound            = errors.New("archive file not found")
)

var outcomeNames = map[Outcome]string{
	Success:                    "Success",
	SourceDirNotFound:          "SourceDirNotFound",
	EmptySourcePath:            "EmptySourcePath",
	ExistingOutputDeleteFailed: "ExistingOutputDeleteFailed",
	CompressFailed:             "CompressFailed",
	ExtractFailed:              "ExtractFailed",
	NotAnArchiveFile:           "NotAnArchiveFile",
	ArchiveNotFound:            "ArchiveNotFound",
}

var outcomeErrors = map[Outcome]error{
	SourceDirNotFound:          ErrSourceDirNotFound,
	EmptySourcePath:            ErrEmptySourcePath,
	ExistingOutputDeleteFailed: ErrExistingOutputDeleteFailed,
	CompressFailed:             ErrCompressFailed,
	ExtractFailed:              ErrExtractFailed,
	NotAnArchiveFile:           ErrNotAnArchiveFile,
	ArchiveNotFound:            ErrArchiveNotFound,
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// OK reports whether o is Success.
func (o Outcome) OK() bool {
	return o == Success
}

// Err returns the sentinel error for a failure outcome, or nil for Success.
func (o Outcome) Err() error {
	if o == Success {
		return nil
	}
	if err, ok := outcomeErrors[o]; ok {
		return err
	}
	return fmt.Errorf("unknown archive outcome %d", int(o))
}
