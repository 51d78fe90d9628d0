package engine

import (
	"context"
)

// Task is one unit of archive work. Failures are reported through the Result outcome,
// not as errors.
type Task interface {
	Named
	Run(ctx context.Context) Result
}

type TaskFunc func(ctx context.Context) Result

type taskFunction struct {
	name string
	kind string
	fn   TaskFunc
}

func (t *taskFunction) Name() string {
	return t.name
}

func (t *taskFunction) Kind() string {
	return t.kind
}

func (t *taskFunction) Run(ctx context.Context) Result {
	return t.fn(ctx)
}

func TaskFunction(name string, kind string, fn TaskFunc) Task {
	return &taskFunction{name: name, kind: kind, fn: fn}
}
