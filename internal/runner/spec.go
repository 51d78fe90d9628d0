package runner

import (
	"fmt"

	v1 "github.com/infracollect/dirarchive/apis/v1"
	"github.com/infracollect/dirarchive/internal/engine/sinks"
	"github.com/infracollect/dirarchive/internal/engine/tasks"
)

// ResolvedSpec holds a kind identifier and the spec for that kind.
type ResolvedSpec struct {
	Kind string
	Spec any
}

// ResolveTaskSpec extracts the kind and spec from a v1.Task.
// Returns an error if no task type is specified.
func ResolveTaskSpec(t v1.Task) (ResolvedSpec, error) {
	switch {
	case t.Compress != nil && t.Extract != nil:
		return ResolvedSpec{}, fmt.Errorf("task %q sets both compress and extract", t.ID)
	case t.Compress != nil:
		return ResolvedSpec{Kind: tasks.CompressTaskKind, Spec: t.Compress}, nil
	case t.Extract != nil:
		return ResolvedSpec{Kind: tasks.ExtractTaskKind, Spec: t.Extract}, nil
	default:
		return ResolvedSpec{}, fmt.Errorf("task %q has no type specified", t.ID)
	}
}

// ResolvePublishSpec extracts the sink kind and spec from a v1.PublishSpec.
func ResolvePublishSpec(p v1.PublishSpec) (ResolvedSpec, error) {
	switch {
	case p.S3 != nil:
		return ResolvedSpec{Kind: sinks.S3SinkKind, Spec: p.S3}, nil
	case p.Filesystem != nil:
		return ResolvedSpec{Kind: sinks.FilesystemSinkKind, Spec: p.Filesystem}, nil
	default:
		return ResolvedSpec{}, fmt.Errorf("publish target has no type specified")
	}
}
