package engine

import (
	"context"
	"io"
)

// Encoder serializes a run report (JSON, YAML).
type Encoder interface {
	EncodeReport(ctx context.Context, report Report) (io.Reader, error)

	// FileExtension returns extension without dot (e.g., "json").
	FileExtension() string
}
