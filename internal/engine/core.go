// Package engine runs archive tasks as a pipeline and publishes what they produce.
package engine

import "context"

type Named interface {
	Name() string
	Kind() string
}

type Closer interface {
	Close(context.Context) error
}

const (
	// ISO8601Basic is a URL-safe timestamp format without colons.
	// Used for S3 keys, report names and the JOB_DATE_ISO8601 variable.
	ISO8601Basic = "20060102T150405Z"
)
