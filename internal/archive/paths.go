package archive

import (
	"strings"
)

const pathSeparators = `/\`

// DefaultArchivePath returns the archive path derived from a source directory:
// the directory path followed by "." and ext. Trailing separators are dropped so
// "logs/" and "logs" both give "logs.zip".
func DefaultArchivePath(sourceDir, ext string) string {
	trimmed := strings.TrimRight(sourceDir, pathSeparators)
	if trimmed == "" {
		trimmed = sourceDir
	}
	return trimmed + "." + ext
}

// ArchiveExtension returns the substring after the last "." of path, or "" if there is none.
func ArchiveExtension(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return path[idx+1:]
}

// HasArchiveExtension reports whether the extension of path equals ext, ignoring case.
func HasArchiveExtension(path, ext string) bool {
	return strings.EqualFold(ArchiveExtension(path), ext)
}

// DefaultExtractDir returns archivePath without its extension and the preceding ".".
func DefaultExtractDir(archivePath string) string {
	idx := strings.LastIndex(archivePath, ".")
	if idx < 0 {
		return archivePath
	}
	return archivePath[:idx]
}
