package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TaskEntry holds a task with its ID for ordered execution.
type TaskEntry struct {
	ID   string
	Task Task
}

type Pipeline struct {
	name        string
	date        time.Time
	concurrency int
	logger      *zap.Logger
	tasks       []TaskEntry
}

func NewPipeline(name string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		name:        name,
		date:        time.Now().UTC(),
		concurrency: 1,
		logger:      logger,
	}
}

// SetConcurrency bounds how many tasks run at the same time. Values below one run tasks
// sequentially.
func (p *Pipeline) SetConcurrency(n int) {
	p.concurrency = max(n, 1)
}

func (p *Pipeline) AddTask(id string, task Task) error {
	for _, entry := range p.tasks {
		if entry.ID == id {
			return fmt.Errorf("task %s already exists", id)
		}
	}

	p.tasks = append(p.tasks, TaskEntry{ID: id, Task: task})
	return nil
}

func (p *Pipeline) Name() string {
	return p.name
}

func (p *Pipeline) Date() time.Time {
	return p.date
}

func (p *Pipeline) Tasks() []TaskEntry {
	return p.tasks
}

// Run executes every task and returns their results in declaration order. Cancellation is
// checked before each task starts; a running task always completes.
func (p *Pipeline) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(p.tasks))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)

	for i, entry := range p.tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("context cancelled while running pipeline at task '%s': %w", entry.ID, err)
			}

			logger := p.logger.With(zap.String("task_id", entry.ID), zap.String("task_kind", entry.Task.Kind()))
			logger.Debug("running task")

			result := entry.Task.Run(ctx)
			result.ID = entry.ID
			if result.Kind == "" {
				result.Kind = entry.Task.Kind()
			}

			if result.Failed() {
				logger.Warn("task failed", zap.String("outcome", result.Outcome), zap.Int("code", result.Code))
			} else {
				logger.Info("task succeeded", zap.Int64("duration_ms", result.DurationMs))
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
