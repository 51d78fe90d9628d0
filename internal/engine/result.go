package engine

import (
	"time"

	"github.com/samber/lo"

	"github.com/infracollect/dirarchive/internal/archive"
)

// Result is what a task reports once it has run.
type Result struct {
	ID           string `json:"id" yaml:"id"`
	Kind         string `json:"kind" yaml:"kind"`
	Outcome      string `json:"outcome" yaml:"outcome"`
	Code         int    `json:"code" yaml:"code"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target,omitempty" yaml:"target,omitempty"`
	Published    string `json:"published,omitempty" yaml:"published,omitempty"`
	PublishError string `json:"publish_error,omitempty" yaml:"publish_error,omitempty"`
	DurationMs   int64  `json:"duration_ms" yaml:"duration_ms"`
}

// NewResult fills the outcome fields of a Result.
func NewResult(kind string, outcome archive.Outcome, source, target string, duration time.Duration) Result {
	return Result{
		Kind:       kind,
		Outcome:    outcome.String(),
		Code:       int(outcome),
		Source:     source,
		Target:     target,
		DurationMs: duration.Milliseconds(),
	}
}

func (r Result) Failed() bool {
	return r.Code != int(archive.Success)
}

// Report summarizes one pipeline run.
type Report struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Job       string    `json:"job" yaml:"job"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Tasks     []Result  `json:"tasks" yaml:"tasks"`
	Succeeded int       `json:"succeeded" yaml:"succeeded"`
	Failed    int       `json:"failed" yaml:"failed"`
}

func NewReport(runID, job string, startedAt time.Time, results []Result) Report {
	failed := lo.CountBy(results, func(r Result) bool { return r.Failed() })
	return Report{
		RunID:     runID,
		Job:       job,
		StartedAt: startedAt,
		Tasks:     results,
		Succeeded: len(results) - failed,
		Failed:    failed,
	}
}

// Name is the file name a report is published under.
func (r Report) Name(ext string) string {
	return "report-" + r.StartedAt.UTC().Format(ISO8601Basic) + "." + ext
}
