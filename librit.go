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


package librit

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/component/langchain"
	"github.com/poiesic/librit/component/native"
	"github.com/poiesic/librit/config"
	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/pipeline"
	"github.com/poiesic/librit/reembed"
	"github.com/poiesic/librit/search"
	"github.com/poiesic/librit/storage"
	"github.com/poiesic/librit/storage/badger"
	"github.com/poiesic/librit/strategy"
	"github.com/poiesic/librit/tasks"
)

// ErrProjectRequired is returned when opening a knowledge base without a
// project declaration.
var ErrProjectRequired = errors.New("project declaration required")

// StoreName is the name the knowledge base's own chunk store is
// registered under. The universal strategy resolves it by default.
const StoreName = "badger"

// KnowledgeBase ties the pieces together: component registry, strategy
// resolver, ingestion pipeline, task scheduler, stored chunks, and the
// query surface, all over one badger database.
type KnowledgeBase struct {
	backend   *badger.Backend
	chunks    storage.ChunkRepository
	runs      storage.RunRepository
	registry  *component.Registry
	project   *config.Project
	resolver  *strategy.Resolver
	pipeline  *pipeline.Orchestrator
	scheduler *tasks.Scheduler
	searcher  *search.Searcher
	logger    *slog.Logger
}

// KnowledgeBaseOption configures a KnowledgeBase.
type KnowledgeBaseOption func(*knowledgeBaseOptions)

type knowledgeBaseOptions struct {
	componentConfig *langchain.Config
	registry        *component.Registry
	source          fs.FS
	stageTimeout    time.Duration
	inMemory        bool
}

// WithComponentConfig sets the configuration for the langchaingo-backed
// components. Default is langchain.DefaultConfig().
func WithComponentConfig(cfg *langchain.Config) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		o.componentConfig = cfg
	}
}

// WithRegistry supplies a pre-populated component registry instead of
// the default native + langchain set. When the registry is still
// unsealed, the knowledge base registers its own chunk store under
// StoreName (unless that name is taken) and seals it.
func WithRegistry(reg *component.Registry) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		o.registry = reg
	}
}

// WithSource sets the filesystem ingested files are read from.
// Default is the process working directory.
func WithSource(source fs.FS) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		o.source = source
	}
}

// WithStageTimeout bounds each external pipeline call.
// Default is pipeline.DefaultStageTimeout.
func WithStageTimeout(timeout time.Duration) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		o.stageTimeout = timeout
	}
}

// WithInMemory opens the backing store in memory, for tests and
// throwaway runs.
func WithInMemory() KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		o.inMemory = true
	}
}

// Open creates a knowledge base at dbPath for the given project
// declaration.
func Open(dbPath string, project *config.Project, opts ...KnowledgeBaseOption) (*KnowledgeBase, error) {
	if project == nil {
		return nil, ErrProjectRequired
	}

	options := &knowledgeBaseOptions{
		componentConfig: langchain.DefaultConfig(),
		source:          os.DirFS("."),
		stageTimeout:    pipeline.DefaultStageTimeout,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(dbPath, options.inMemory)
	if err != nil {
		return nil, err
	}

	chunks, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	runs, err := badger.NewRunRepository(backend)
	if err != nil {
		chunks.Close()
		backend.Close()
		return nil, err
	}

	kb := &KnowledgeBase{
		backend: backend,
		chunks:  chunks,
		runs:    runs,
		project: project,
		logger:  slog.Default(),
	}

	kb.registry, err = kb.buildRegistry(options)
	if err != nil {
		kb.closeStorage()
		return nil, err
	}

	kb.resolver, err = strategy.NewResolver(kb.registry, project.StrategySpecs())
	if err != nil {
		kb.closeStorage()
		return nil, err
	}

	kb.pipeline, err = pipeline.NewOrchestrator(options.source,
		pipeline.WithStageTimeout(options.stageTimeout))
	if err != nil {
		kb.closeStorage()
		return nil, err
	}

	kb.scheduler, err = tasks.NewScheduler(kb.resolver, kb.pipeline,
		tasks.WithRunRepository(runs))
	if err != nil {
		kb.closeStorage()
		return nil, err
	}

	embedder, err := kb.registry.Embedder(strategy.UniversalSpec().Embedder)
	if err != nil {
		kb.scheduler.Release()
		kb.closeStorage()
		return nil, err
	}

	kb.searcher, err = search.NewSearcher(chunks, embedder)
	if err != nil {
		kb.scheduler.Release()
		kb.closeStorage()
		return nil, err
	}

	return kb, nil
}

// buildRegistry assembles and seals the component registry: native and
// langchaingo components plus this knowledge base's chunk store, or the
// caller's registry when one was supplied.
func (kb *KnowledgeBase) buildRegistry(options *knowledgeBaseOptions) (*component.Registry, error) {
	reg := options.registry
	if reg == nil {
		reg = component.NewRegistry()
		if err := native.Register(reg); err != nil {
			return nil, err
		}
		if err := langchain.Register(reg, options.componentConfig); err != nil {
			return nil, err
		}
	}

	if !reg.Sealed() {
		if !slices.Contains(reg.Names(component.KindStore), StoreName) {
			err := reg.RegisterStore(StoreName, func() (component.Store, error) {
				return kb.chunks, nil
			})
			if err != nil {
				return nil, err
			}
		}
		reg.Seal()
	}
	return reg, nil
}

// Ingest runs one dataset of the project synchronously and persists the
// resulting ingestion record. A nil monitor disables progress reporting.
//
// The record is returned also when the run failed or was cancelled, so
// callers always see which files succeeded and which failed with why.
func (kb *KnowledgeBase) Ingest(ctx context.Context, datasetName string, monitor pipeline.Monitor) (*core.IngestionRecord, error) {
	dataset, err := kb.project.Dataset(datasetName)
	if err != nil {
		return nil, err
	}

	runner, err := pipeline.NewRunner(kb.resolver, kb.pipeline,
		pipeline.WithMonitor(monitor),
		pipeline.WithRunnerLogger(kb.logger))
	if err != nil {
		return nil, err
	}

	record, runErr := runner.Run(ctx,
		kb.project.Namespace, kb.project.Name, dataset.Name,
		dataset.RAGStrategy, dataset.FileRefs())
	if record == nil {
		return nil, runErr
	}

	saved, saveErr := kb.runs.SaveRun(context.WithoutCancel(ctx), record)
	if saveErr != nil {
		kb.logger.Error("error saving ingestion record",
			"dataset", dataset.Name, "err", saveErr)
		return record, runErr
	}
	return saved, runErr
}

// Submit schedules one dataset of the project as a background task.
// At most one task per dataset is active at a time.
func (kb *KnowledgeBase) Submit(ctx context.Context, datasetName string) (*tasks.Task, error) {
	dataset, err := kb.project.Dataset(datasetName)
	if err != nil {
		return nil, err
	}

	return kb.scheduler.Submit(ctx, tasks.Request{
		Namespace: kb.project.Namespace,
		Project:   kb.project.Name,
		Dataset:   dataset.Name,
		Strategy:  dataset.RAGStrategy,
		Files:     dataset.FileRefs(),
	})
}

// Query returns the stored chunks most similar to the query text.
func (kb *KnowledgeBase) Query(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return kb.searcher.FindSimilar(ctx, query, maxHits)
}

// QueryWithMetadata returns similar chunks whose metadata contains
// every key/value pair of the filter.
func (kb *KnowledgeBase) QueryWithMetadata(ctx context.Context, query string, filter map[string]string, maxHits int) ([]*core.SearchResult, error) {
	return kb.searcher.FindWithMetadata(ctx, query, filter, maxHits)
}

// Strategies returns the project's declared strategy names, sorted.
// The universal strategy is implicit and not listed.
func (kb *KnowledgeBase) Strategies() []string {
	return kb.resolver.Names()
}

// Runs returns the most recent ingestion records, newest first.
func (kb *KnowledgeBase) Runs(ctx context.Context, limit int) ([]*core.IngestionRecord, error) {
	return kb.runs.ListRuns(ctx, limit)
}

// DatasetRuns returns the most recent ingestion records for one
// dataset, newest first.
func (kb *KnowledgeBase) DatasetRuns(ctx context.Context, datasetName string, limit int) ([]*core.IngestionRecord, error) {
	return kb.runs.ListDatasetRuns(ctx, kb.project.Namespace, kb.project.Name, datasetName, limit)
}

// Reembed regenerates every stored chunk vector with the configured
// embedder, reporting progress to the writer.
func (kb *KnowledgeBase) Reembed(ctx context.Context, cfg *reembed.Config, progress io.Writer) error {
	embedder, err := kb.registry.Embedder(strategy.UniversalSpec().Embedder)
	if err != nil {
		return err
	}
	return reembed.NewReembedder(kb.chunks, embedder, cfg, progress).Run(ctx)
}

// ChunkRepository exposes the stored chunks.
func (kb *KnowledgeBase) ChunkRepository() storage.ChunkRepository {
	return kb.chunks
}

// RunRepository exposes the stored ingestion records.
func (kb *KnowledgeBase) RunRepository() storage.RunRepository {
	return kb.runs
}

// Registry exposes the sealed component registry.
func (kb *KnowledgeBase) Registry() *component.Registry {
	return kb.registry
}

func (kb *KnowledgeBase) closeStorage() {
	if err := kb.runs.Close(); err != nil {
		kb.logger.Error("error closing run repository", "err", err)
	}
	if err := kb.chunks.Close(); err != nil {
		kb.logger.Error("error closing chunk repository", "err", err)
	}
	if err := kb.backend.Close(); err != nil {
		kb.logger.Error("error closing backend storage", "err", err)
	}
}

// Close releases the scheduler and closes the backing store. In-flight
// tasks are cancelled cooperatively.
func (kb *KnowledgeBase) Close() error {
	kb.scheduler.Release()

	if err := kb.runs.Close(); err != nil {
		kb.logger.Error("error closing run repository", "err", err)
		return err
	}
	if err := kb.chunks.Close(); err != nil {
		kb.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := kb.backend.Close(); err != nil {
		kb.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
