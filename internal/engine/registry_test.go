package engine

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/archive"
)

// Mock types for testing

type mockSink struct {
	name string
	kind string
}

func (m *mockSink) Name() string                                   { return m.name }
func (m *mockSink) Kind() string                                   { return m.kind }
func (m *mockSink) Close(context.Context) error                    { return nil }
func (m *mockSink) Write(context.Context, string, io.Reader) error { return nil }

type mockTask struct {
	name string
	kind string
}

func (m *mockTask) Name() string { return m.name }
func (m *mockTask) Kind() string { return m.kind }
func (m *mockTask) Run(context.Context) Result {
	return Result{}
}

type testSinkSpec struct {
	Value string
}

type testTaskSpec struct {
	Value string
}

type wrongSpec struct{}

func testEnv() Env {
	return Env{Archiver: archive.New()}
}

func TestNewSinkFactory(t *testing.T) {
	logger := zap.NewNop()
	ctx := t.Context()

	t.Run("correct spec type returns sink", func(t *testing.T) {
		expectedSink := &mockSink{name: "test", kind: "test_kind"}

		factory := NewSinkFactory("test_kind", func(_ context.Context, _ *zap.Logger, spec testSinkSpec) (Sink, error) {
			assert.Equal(t, "test_value", spec.Value)
			return expectedSink, nil
		})

		sink, err := factory(ctx, logger, testSinkSpec{Value: "test_value"})

		require.NoError(t, err)
		assert.Equal(t, expectedSink, sink)
	})

	t.Run("wrong spec type returns error", func(t *testing.T) {
		factory := NewSinkFactory("test_kind", func(_ context.Context, _ *zap.Logger, spec testSinkSpec) (Sink, error) {
			t.Fatal("factory should not be called with wrong spec type")
			return nil, nil
		})

		sink, err := factory(ctx, logger, wrongSpec{})

		require.Error(t, err)
		assert.Nil(t, sink)
		assert.ErrorContains(t, err, "test_kind")
		assert.ErrorContains(t, err, "wrongSpec")
	})
}

func TestNewTaskFactory(t *testing.T) {
	logger := zap.NewNop()
	ctx := t.Context()

	t.Run("correct spec type returns task", func(t *testing.T) {
		expectedTask := &mockTask{name: "test", kind: "test_kind"}
		env := testEnv()

		factory := NewTaskFactory("test_kind", func(_ context.Context, _ *zap.Logger, id string, e Env, spec testTaskSpec) (Task, error) {
			assert.Equal(t, "task_id", id)
			assert.Same(t, env.Archiver, e.Archiver)
			assert.Equal(t, "test_value", spec.Value)
			return expectedTask, nil
		})

		task, err := factory(ctx, logger, "task_id", env, testTaskSpec{Value: "test_value"})

		require.NoError(t, err)
		assert.Equal(t, expectedTask, task)
	})

	t.Run("missing archiver returns error", func(t *testing.T) {
		factory := NewTaskFactory("test_kind", func(_ context.Context, _ *zap.Logger, _ string, _ Env, _ testTaskSpec) (Task, error) {
			t.Fatal("factory should not be called without an archiver")
			return nil, nil
		})

		task, err := factory(ctx, logger, "task_id", Env{}, testTaskSpec{})

		require.Error(t, err)
		assert.Nil(t, task)
		assert.ErrorContains(t, err, "test_kind")
		assert.ErrorContains(t, err, "requires an archiver")
	})

	t.Run("wrong spec type returns error", func(t *testing.T) {
		factory := NewTaskFactory("test_kind", func(_ context.Context, _ *zap.Logger, _ string, _ Env, _ testTaskSpec) (Task, error) {
			t.Fatal("factory should not be called with wrong spec type")
			return nil, nil
		})

		task, err := factory(ctx, logger, "task_id", testEnv(), wrongSpec{})

		require.Error(t, err)
		assert.Nil(t, task)
		assert.ErrorContains(t, err, "test_kind")
		assert.ErrorContains(t, err, "task_id")
		assert.ErrorContains(t, err, "wrongSpec")
	})
}

func TestRegistry(t *testing.T) {
	ctx := t.Context()
	registry := NewRegistry(zap.NewNop())

	registry.RegisterTask("extract", NewTaskFactory("extract", func(_ context.Context, _ *zap.Logger, id string, _ Env, _ testTaskSpec) (Task, error) {
		return &mockTask{name: id, kind: "extract"}, nil
	}))
	registry.RegisterTask("compress", NewTaskFactory("compress", func(_ context.Context, _ *zap.Logger, id string, _ Env, _ testTaskSpec) (Task, error) {
		return &mockTask{name: id, kind: "compress"}, nil
	}))
	registry.RegisterSink("filesystem", NewSinkFactory("filesystem", func(_ context.Context, _ *zap.Logger, _ testSinkSpec) (Sink, error) {
		return &mockSink{name: "fs", kind: "filesystem"}, nil
	}))

	assert.Equal(t, []string{"compress", "extract"}, registry.AvailableTasks())
	assert.Equal(t, []string{"filesystem"}, registry.AvailableSinks())

	t.Run("registered task kind", func(t *testing.T) {
		task, err := registry.CreateTask(ctx, "compress", "logs", testEnv(), testTaskSpec{})
		require.NoError(t, err)
		assert.Equal(t, "logs", task.Name())
		assert.Equal(t, "compress", task.Kind())
	})

	t.Run("unknown task kind", func(t *testing.T) {
		_, err := registry.CreateTask(ctx, "tar", "logs", testEnv(), testTaskSpec{})

		var unsupported *UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "task", unsupported.Category)
		assert.Equal(t, "tar", unsupported.Kind)
		assert.Equal(t, []string{"compress", "extract"}, unsupported.Available)
		assert.EqualError(t, err, `unsupported task type "tar" (available: [compress extract])`)
	})

	t.Run("unknown sink kind", func(t *testing.T) {
		_, err := NewRegistry(zap.NewNop()).CreateSink(ctx, "s3", testSinkSpec{})
		assert.EqualError(t, err, `unsupported sink type "s3": no sinks registered`)
	})
}
