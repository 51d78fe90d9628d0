package sinks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	uploads []mockUpload
	err     error
}

type mockUpload struct {
	bucket      string
	key         string
	body        []byte
	contentType string
}

func (m *mockUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	upload := mockUpload{
		bucket: *input.Bucket,
		key:    *input.Key,
		body:   body,
	}
	if input.ContentType != nil {
		upload.contentType = *input.ContentType
	}
	m.uploads = append(m.uploads, upload)
	if m.err != nil {
		return nil, m.err
	}
	return &manager.UploadOutput{}, nil
}

func TestS3Sink_Name(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		prefix   string
		expected string
	}{
		{
			name:     "bucket only",
			bucket:   "my-bucket",
			prefix:   "",
			expected: "s3(my-bucket)",
		},
		{
			name:     "bucket with prefix",
			bucket:   "my-bucket",
			prefix:   "backups/nightly",
			expected: "s3(my-bucket/backups/nightly)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewS3SinkWithUploader(tt.bucket, tt.prefix, &mockUploader{})
			assert.Equal(t, tt.expected, sink.Name())
		})
	}
}

func TestS3Sink_Kind(t *testing.T) {
	sink := NewS3SinkWithUploader("bucket", "", &mockUploader{})
	assert.Equal(t, "s3", sink.Kind())
}

func TestS3Sink_Write(t *testing.T) {
	tests := []struct {
		name           string
		bucket         string
		prefix         string
		path           string
		data           string
		expectedKey    string
		expectedBucket string
	}{
		{
			name:           "write without prefix",
			bucket:         "my-bucket",
			prefix:         "",
			path:           "site.zip",
			data:           "PK\x03\x04",
			expectedKey:    "site.zip",
			expectedBucket: "my-bucket",
		},
		{
			name:           "write with prefix",
			bucket:         "my-bucket",
			prefix:         "backups/20240101T000000Z",
			path:           "site.zip",
			data:           "PK\x03\x04",
			expectedKey:    "backups/20240101T000000Z/site.zip",
			expectedBucket: "my-bucket",
		},
		{
			name:           "write nested path with prefix",
			bucket:         "my-bucket",
			prefix:         "data",
			path:           "nested/path/file.json",
			data:           `{"nested": true}`,
			expectedKey:    "data/nested/path/file.json",
			expectedBucket: "my-bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &mockUploader{}
			sink := NewS3SinkWithUploader(tt.bucket, tt.prefix, uploader)

			err := sink.Write(t.Context(), tt.path, bytes.NewBufferString(tt.data))
			require.NoError(t, err)

			require.Len(t, uploader.uploads, 1)
			assert.Equal(t, tt.expectedBucket, uploader.uploads[0].bucket)
			assert.Equal(t, tt.expectedKey, uploader.uploads[0].key)
			assert.Equal(t, tt.data, string(uploader.uploads[0].body))
		})
	}
}

func TestS3Sink_Write_ContentType(t *testing.T) {
	tests := []struct {
		name                string
		path                string
		expectedContentType string
	}{
		{
			name:                "zip archive",
			path:                "site.zip",
			expectedContentType: "application/zip",
		},
		{
			name:                "upper case zip archive",
			path:                "SITE.ZIP",
			expectedContentType: "application/zip",
		},
		{
			name:                "json report",
			path:                "report-20240101T000000Z.json",
			expectedContentType: "application/json",
		},
		{
			name:                "yaml report",
			path:                "report.yaml",
			expectedContentType: "application/x-yaml",
		},
		{
			name:                "yml report",
			path:                "report.yml",
			expectedContentType: "application/x-yaml",
		},
		{
			name:                "unknown extension",
			path:                "data.bin",
			expectedContentType: "",
		},
		{
			name:                "no extension",
			path:                "data",
			expectedContentType: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &mockUploader{}
			sink := NewS3SinkWithUploader("bucket", "", uploader)

			err := sink.Write(t.Context(), tt.path, bytes.NewBufferString("content"))
			require.NoError(t, err)

			require.Len(t, uploader.uploads, 1)
			assert.Equal(t, tt.expectedContentType, uploader.uploads[0].contentType)
		})
	}
}

func TestS3Sink_Write_UploadError(t *testing.T) {
	uploader := &mockUploader{err: errors.New("access denied")}
	sink := NewS3SinkWithUploader("backups", "nightly", uploader)

	err := sink.Write(t.Context(), "site.zip", bytes.NewBufferString("zip"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "s3://backups/nightly/site.zip")
	assert.ErrorContains(t, err, "access denied")
}
