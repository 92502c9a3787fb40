// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tasks

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/pipeline"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Request identifies one dataset ingestion to schedule.
type Request struct {
	Namespace string
	Project   string
	Dataset   string

	// Strategy is the dataset's default strategy reference.
	// Empty selects the built-in universal strategy.
	Strategy string

	// Files to ingest, in declaration order.
	Files []core.FileRef
}

// Key returns the exclusion key for the request's dataset. Only one
// task per key may be active at a time.
func (r Request) Key() string {
	return strings.Join([]string{r.Namespace, r.Project, r.Dataset}, "/")
}

// Result is the task's outward-facing success payload.
type Result struct {
	Message   string
	Namespace string
	Project   string
	Dataset   string
	Strategy  string
	Files     []string // processed file paths, in completion order
}

// Task is one scheduled dataset ingestion. It doubles as the run's
// pipeline.Monitor so the processed-files snapshot stays current while
// the run is in flight. All accessors are safe for concurrent use.
type Task struct {
	request Request
	cancel  context.CancelFunc
	done    chan struct{}

	mu        sync.Mutex
	status    Status
	processed []string
	record    *core.IngestionRecord
	err       error
}

var _ pipeline.Monitor = (*Task)(nil)

func newTask(request Request, cancel context.CancelFunc) *Task {
	return &Task{
		request: request,
		cancel:  cancel,
		done:    make(chan struct{}),
		status:  StatusQueued,
	}
}

// Request returns the request the task was submitted with.
func (t *Task) Request() Request {
	return t.request
}

// Status returns the task's current lifecycle state.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// ProcessedFiles returns a snapshot of the file paths ingested so far,
// in completion order. Safe to poll while the task is running.
func (t *Task) ProcessedFiles() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string{}, t.processed...)
}

// Record returns the ingestion record, nil until the task finishes.
// Cancelled and failed tasks keep their partial record.
func (t *Task) Record() *core.IngestionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record
}

// Err returns the task's terminal error, nil while running or on success.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done returns a channel closed when the task reaches a terminal state.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel requests cooperative cancellation of the task's run. The run
// stops at the next between-files checkpoint; the partial record is
// kept.
func (t *Task) Cancel() {
	t.cancel()
}

// Result returns the success payload of a completed task. It fails
// with ErrTaskNotDone while the task is still queued or running, and
// with the task's own error when the run failed or was cancelled.
func (t *Task) Result() (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.status {
	case StatusQueued, StatusRunning:
		return nil, ErrTaskNotDone
	case StatusFailed, StatusCancelled:
		return nil, t.err
	}

	return &Result{
		Message:   t.record.Message(),
		Namespace: t.record.Namespace,
		Project:   t.record.Project,
		Dataset:   t.record.Dataset,
		Strategy:  t.record.Strategy,
		Files:     t.record.ProcessedPaths(),
	}, nil
}

// RunStarted implements pipeline.Monitor.
func (t *Task) RunStarted(_, _, _ string, _ int) {}

// FileStarted implements pipeline.Monitor.
func (t *Task) FileStarted(_ string) {}

// FileCompleted implements pipeline.Monitor. It appends the file to the
// processed snapshot; failed files are never added.
func (t *Task) FileCompleted(result core.FileResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processed = append(t.processed, result.Path)
}

// FileFailed implements pipeline.Monitor.
func (t *Task) FileFailed(_ core.FileFailure) {}

// RunFinished implements pipeline.Monitor.
func (t *Task) RunFinished(_ *core.IngestionRecord) {}

func (t *Task) setRunning() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusRunning
}

// finish records the run outcome and moves the task to its terminal
// state. It must be called exactly once.
func (t *Task) finish(record *core.IngestionRecord, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.record = record
	t.err = err

	switch {
	case record != nil && record.Cancelled:
		t.status = StatusCancelled
	case err != nil:
		t.status = StatusFailed
	default:
		t.status = StatusCompleted
	}
	close(t.done)
}
