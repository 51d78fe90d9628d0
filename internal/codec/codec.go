// Package codec defines the archive codec used to turn a directory tree into a single
// archive file and back.
package codec

import "github.com/spf13/afero"

// Codec creates and extracts whole archives on a filesystem.
type Codec interface {
	// Extension returns the canonical archive file extension without dot (e.g., "zip").
	Extension() string

	// Compress writes an archive at archivePath holding the full recursive contents of
	// sourceDir. archivePath must not exist or is truncated.
	Compress(fs afero.Fs, sourceDir, archivePath string) error

	// Extract unpacks the archive at archivePath into destinationDir, creating it if needed.
	Extract(fs afero.Fs, archivePath, destinationDir string) error
}
