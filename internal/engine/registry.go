package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/archive"
)

// Env carries what every task shares within one run.
type Env struct {
	Archiver *archive.Archiver
	Fs       afero.Fs
	// Publisher receives the archives produced by compress tasks. Nil disables publishing.
	Publisher Sink
}

type SinkFactory func(ctx context.Context, logger *zap.Logger, input any) (Sink, error)
type TaskFactory func(ctx context.Context, logger *zap.Logger, id string, env Env, input any) (Task, error)

// TypedSinkFactory is a strongly-typed sink factory.
// T is the concrete spec type (e.g. *v1.S3Publish).
type TypedSinkFactory[T any] func(ctx context.Context, logger *zap.Logger, spec T) (Sink, error)

// TypedTaskFactory is a strongly-typed task factory.
// S is the concrete task spec type (e.g. *v1.CompressTask).
type TypedTaskFactory[S any] func(ctx context.Context, logger *zap.Logger, id string, env Env, spec S) (Task, error)

// NewSinkFactory wraps a typed sink factory into a generic SinkFactory.
// It centralizes the unsafe cast from any → T and provides a clear error if the type mismatches.
func NewSinkFactory[T any](kind string, f TypedSinkFactory[T]) SinkFactory {
	return func(ctx context.Context, logger *zap.Logger, input any) (Sink, error) {
		spec, ok := input.(T)
		if !ok {
			return nil, fmt.Errorf("invalid sink spec for kind %q: %T", kind, input)
		}
		return f(ctx, logger, spec)
	}
}

// NewTaskFactory wraps a typed task factory into a generic TaskFactory.
// A task cannot run without an archiver, so a missing one is rejected here.
func NewTaskFactory[S any](kind string, f TypedTaskFactory[S]) TaskFactory {
	return func(ctx context.Context, logger *zap.Logger, id string, env Env, input any) (Task, error) {
		if env.Archiver == nil {
			return nil, fmt.Errorf("task kind %q with id %s requires an archiver, got nil", kind, id)
		}

		spec, ok := input.(S)
		if !ok {
			return nil, fmt.Errorf("invalid task spec for kind %q with id %s: %T", kind, id, input)
		}

		return f(ctx, logger, id, env, spec)
	}
}

// UnsupportedTypeError is returned when a sink or task kind is not registered.
type UnsupportedTypeError struct {
	Category  string   // "sink" or "task"
	Kind      string   // the requested kind
	Available []string // registered kinds
}

func (e *UnsupportedTypeError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unsupported %s type %q: no %ss registered", e.Category, e.Kind, e.Category)
	}
	return fmt.Sprintf("unsupported %s type %q (available: %v)", e.Category, e.Kind, e.Available)
}

type Registry struct {
	mu     sync.RWMutex
	sinks  map[string]SinkFactory
	tasks  map[string]TaskFactory
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		sinks:  make(map[string]SinkFactory),
		tasks:  make(map[string]TaskFactory),
		logger: logger,
	}
}

func (r *Registry) RegisterSink(kind string, factory SinkFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[kind] = factory
}

func (r *Registry) RegisterTask(kind string, factory TaskFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[kind] = factory
}

func (r *Registry) CreateSink(ctx context.Context, kind string, spec any) (Sink, error) {
	r.mu.RLock()
	factory, ok := r.sinks[kind]
	available := r.availableSinks()
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedTypeError{Category: "sink", Kind: kind, Available: available}
	}
	return factory(ctx, r.logger.Named(kind), spec)
}

func (r *Registry) CreateTask(ctx context.Context, kind string, id string, env Env, spec any) (Task, error) {
	r.mu.RLock()
	factory, ok := r.tasks[kind]
	available := r.availableTasks()
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedTypeError{Category: "task", Kind: kind, Available: available}
	}
	return factory(ctx, r.logger.Named(kind), id, env, spec)
}

func (r *Registry) AvailableSinks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.availableSinks()
}

func (r *Registry) availableSinks() []string {
	sinks := lo.Keys(r.sinks)
	slices.Sort(sinks)
	return sinks
}

func (r *Registry) AvailableTasks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.availableTasks()
}

func (r *Registry) availableTasks() []string {
	tasks := lo.Keys(r.tasks)
	slices.Sort(tasks)
	return tasks
}
