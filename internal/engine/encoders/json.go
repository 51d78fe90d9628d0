// Package encoders serializes run reports.
package encoders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/infracollect/dirarchive/internal/engine"
)

const (
	JSONFormat = "json"
	YAMLFormat = "yaml"
)

// JSONEncoder implements engine.Encoder for JSON format.
type JSONEncoder struct {
	indent string
}

// NewJSONEncoder creates a JSON encoder. Empty indent produces compact output.
func NewJSONEncoder(indent string) engine.Encoder {
	return &JSONEncoder{
		indent: indent,
	}
}

func (e *JSONEncoder) EncodeReport(ctx context.Context, report engine.Report) (io.Reader, error) {
	var buff bytes.Buffer
	encoder := json.NewEncoder(&buff)
	if e.indent != "" {
		encoder.SetIndent("", e.indent)
	}

	if err := encoder.Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode report as JSON: %w", err)
	}

	return &buff, nil
}

// FileExtension returns "json".
func (e *JSONEncoder) FileExtension() string {
	return JSONFormat
}

// New returns the encoder for format, "" meaning JSON.
func New(format, indent string) (engine.Encoder, error) {
	switch format {
	case "", JSONFormat:
		return NewJSONEncoder(indent), nil
	case YAMLFormat:
		return NewYAMLEncoder(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
