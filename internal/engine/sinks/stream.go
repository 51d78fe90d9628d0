package sinks

import (
	"context"
	"fmt"
	"io"

	"github.com/infracollect/dirarchive/internal/engine"
)

const StreamSinkKind = "stream"

// StreamSink copies everything it receives to a single writer. The report goes to stdout
// through it.
type StreamSink struct {
	w io.Writer
}

func NewStreamSink(w io.Writer) engine.Sink {
	return &StreamSink{w: w}
}

func (s *StreamSink) Name() string {
	return "stream"
}

func (s *StreamSink) Kind() string {
	return StreamSinkKind
}

func (s *StreamSink) Write(ctx context.Context, path string, data io.Reader) error {
	if _, err := io.Copy(s.w, data); err != nil {
		return fmt.Errorf("failed to copy data: %w", err)
	}
	return nil
}

func (s *StreamSink) Close(ctx context.Context) error {
	return nil
}
