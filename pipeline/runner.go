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


package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/strategy"
)

// Runner ingests a dataset's files in declaration order.
//
// File failures are isolated: one bad file is recorded and the run
// moves on. The run itself fails only when the dataset-level strategy
// reference is invalid before the first file, or when every file
// failed.
type Runner struct {
	resolver     *strategy.Resolver
	orchestrator *Orchestrator
	monitor      Monitor
	logger       *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithMonitor sets the run monitor.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) RunnerOption {
	return func(r *Runner) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithRunnerLogger sets a custom logger.
// Default is slog.Default().
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a dataset runner.
func NewRunner(resolver *strategy.Resolver, orchestrator *Orchestrator, opts ...RunnerOption) (*Runner, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if orchestrator == nil {
		return nil, ErrOrchestratorRequired
	}

	r := &Runner{
		resolver:     resolver,
		orchestrator: orchestrator,
		monitor:      &noopMonitor{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run ingests the dataset's files in declaration order. datasetRef is
// the dataset's default strategy reference, empty for the universal
// strategy.
//
// The returned record always reflects what actually happened, also on
// error: a cancelled run returns the partial record together with the
// context's error, and a fully failed run returns the record together
// with ErrAllFilesFailed. Only an invalid dataset reference returns a
// nil record, since no file work has started.
func (r *Runner) Run(ctx context.Context, namespace, project, dataset, datasetRef string, files []core.FileRef) (*core.IngestionRecord, error) {
	// The dataset-level reference must resolve before any file work
	if err := r.resolver.Validate(datasetRef); err != nil {
		r.logger.Error("dataset strategy invalid",
			"dataset", dataset, "strategy", datasetRef, "err", err)
		return nil, err
	}

	record := &core.IngestionRecord{
		Namespace: namespace,
		Project:   project,
		Dataset:   dataset,
		Strategy:  r.resolver.EffectiveName(datasetRef),
		StartedAt: time.Now().UTC(),
	}

	logger := r.logger.With("namespace", namespace, "project", project, "dataset", dataset)
	logger.Info("ingestion run started", "strategy", record.Strategy, "files", len(files))
	r.monitor.RunStarted(namespace, project, dataset, len(files))

	for _, file := range files {
		// Cooperative cancellation between files
		if ctx.Err() != nil {
			record.Cancelled = true
			break
		}

		r.monitor.FileStarted(file.Path)
		result, err := r.ingestOne(ctx, namespace, project, dataset, datasetRef, file)
		if err != nil {
			if ctx.Err() != nil {
				// The failure came from the run being cancelled
				// mid-file, not from the file itself.
				record.Cancelled = true
				break
			}
			failure := failureFor(file.Path, err)
			record.Failed = append(record.Failed, failure)
			r.monitor.FileFailed(failure)
			logger.Warn("file failed",
				"path", file.Path, "stage", failure.Stage, "err", err)
			continue
		}

		record.Processed = append(record.Processed, *result)
		r.monitor.FileCompleted(*result)
	}

	record.FinishedAt = time.Now().UTC()
	r.monitor.RunFinished(record)

	if record.Cancelled {
		logger.Warn("ingestion run cancelled",
			"processed", len(record.Processed), "failed", len(record.Failed))
		return record, ctx.Err()
	}

	logger.Info("ingestion run finished",
		"processed", len(record.Processed), "failed", len(record.Failed))

	if len(files) > 0 && len(record.Processed) == 0 {
		return record, ErrAllFilesFailed
	}
	return record, nil
}

// ingestOne resolves and ingests a single file.
func (r *Runner) ingestOne(ctx context.Context, namespace, project, dataset, datasetRef string, file core.FileRef) (*core.FileResult, error) {
	resolved, err := r.resolver.ResolveFile(datasetRef, file)
	if err != nil {
		return nil, failStage(StageResolve, file.Path, err)
	}

	fileID := core.FileIdentifier(namespace, project, dataset, file.Path)
	return r.orchestrator.IngestFile(ctx, fileID, resolved, file)
}

// failureFor converts an error into a failure record, preserving the
// stage when the error is a StageError.
func failureFor(path string, err error) core.FileFailure {
	if stageErr, ok := err.(*StageError); ok {
		return core.FileFailure{
			Path:   path,
			Stage:  stageErr.Stage,
			Reason: stageErr.Err.Error(),
		}
	}
	return core.FileFailure{
		Path:   path,
		Stage:  "unknown",
		Reason: err.Error(),
	}
}
