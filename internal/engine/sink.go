package engine

import (
	"context"
	"io"
)

// Sink receives the files a pipeline publishes: archives produced by compress tasks and the
// run report.
type Sink interface {
	Named
	Closer
	// Write stores data under path. Path is relative and uses forward slashes.
	Write(ctx context.Context, path string, data io.Reader) error
}
