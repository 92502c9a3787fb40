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
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/librit/pipeline"
	"github.com/poiesic/librit/storage"
	"github.com/poiesic/librit/strategy"
)

// Scheduler runs dataset ingestions on a worker pool. Independent
// datasets run concurrently; a dataset with an active task rejects new
// submissions until that task finishes, so at most one orchestration
// is ever in flight per file identifier.
type Scheduler struct {
	resolver     *strategy.Resolver
	orchestrator *pipeline.Orchestrator
	runs         storage.RunRepository
	pool         *ants.Pool
	logger       *slog.Logger

	mu     sync.Mutex
	active map[string]*Task
	closed bool
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler) error

// WithPoolSize sets the worker pool size for concurrent dataset runs.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) SchedulerOption {
	return func(s *Scheduler) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithRunRepository persists each finished run's ingestion record.
// Default is no persistence.
func WithRunRepository(runs storage.RunRepository) SchedulerOption {
	return func(s *Scheduler) error {
		s.runs = runs
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScheduler creates a scheduler over the resolver and orchestrator.
func NewScheduler(resolver *strategy.Resolver, orchestrator *pipeline.Orchestrator, opts ...SchedulerOption) (*Scheduler, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if orchestrator == nil {
		return nil, ErrOrchestratorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		resolver:     resolver,
		orchestrator: orchestrator,
		pool:         pool,
		logger:       slog.Default(),
		active:       make(map[string]*Task),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.pool.Release()
			return nil, optErr
		}
	}
	return s, nil
}

// Submit schedules a dataset ingestion and returns its task. The task
// runs detached from ctx; use Task.Cancel to stop it. Submission fails
// with ErrDatasetBusy while the dataset has an active task, and with
// the resolver's not-found error when the request names an unknown
// strategy, so bad references surface at submission rather than as a
// task failure.
func (s *Scheduler) Submit(ctx context.Context, request Request) (*Task, error) {
	if request.Namespace == "" || request.Project == "" || request.Dataset == "" {
		return nil, ErrIncompleteRequest
	}
	if err := s.resolver.Validate(request.Strategy); err != nil {
		return nil, err
	}

	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	task := newTask(request, cancel)
	key := request.Key()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return nil, ErrSchedulerClosed
	}
	if _, busy := s.active[key]; busy {
		s.mu.Unlock()
		cancel()
		return nil, ErrDatasetBusy
	}
	s.active[key] = task
	s.mu.Unlock()

	if err := s.pool.Submit(func() {
		s.execute(taskCtx, task)

		s.mu.Lock()
		delete(s.active, key)
		s.mu.Unlock()
	}); err != nil {
		s.mu.Lock()
		delete(s.active, key)
		s.mu.Unlock()
		cancel()
		return nil, err
	}

	s.logger.Debug("task submitted", "dataset", key, "files", len(request.Files))
	return task, nil
}

// Active returns the in-flight task for a request key, if any.
func (s *Scheduler) Active(key string) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.active[key]
	return task, ok
}

// execute runs one task to its terminal state. The task itself is the
// run's monitor, so its processed-files snapshot updates after each
// file.
func (s *Scheduler) execute(ctx context.Context, task *Task) {
	task.setRunning()
	request := task.Request()

	runner, err := pipeline.NewRunner(s.resolver, s.orchestrator,
		pipeline.WithMonitor(task),
		pipeline.WithRunnerLogger(s.logger))
	if err != nil {
		task.finish(nil, err)
		return
	}

	record, runErr := runner.Run(ctx,
		request.Namespace, request.Project, request.Dataset,
		request.Strategy, request.Files)

	if record != nil && s.runs != nil {
		// Persist also partial records; cancellation must not lose
		// what was already ingested.
		saveCtx := context.WithoutCancel(ctx)
		if saved, saveErr := s.runs.SaveRun(saveCtx, record); saveErr != nil {
			s.logger.Error("error saving ingestion record",
				"dataset", request.Key(), "err", saveErr)
		} else {
			record = saved
		}
	}

	task.finish(record, runErr)
}

// Release waits for no one: it stops accepting submissions and releases
// the worker pool. Tasks already running are cancelled cooperatively.
func (s *Scheduler) Release() {
	s.mu.Lock()
	s.closed = true
	for _, task := range s.active {
		task.Cancel()
	}
	s.mu.Unlock()

	s.pool.Release()
}
