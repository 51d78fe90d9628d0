package encoders

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/infracollect/dirarchive/internal/engine"
)

// YAMLEncoder implements engine.Encoder for YAML format.
type YAMLEncoder struct{}

func NewYAMLEncoder() engine.Encoder {
	return &YAMLEncoder{}
}

func (e *YAMLEncoder) EncodeReport(ctx context.Context, report engine.Report) (io.Reader, error) {
	var buff bytes.Buffer
	if err := yaml.NewEncoder(&buff, yaml.UseLiteralStyleIfMultiline(true)).Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode report as YAML: %w", err)
	}

	return &buff, nil
}

// FileExtension returns "yaml".
func (e *YAMLEncoder) FileExtension() string {
	return YAMLFormat
}
