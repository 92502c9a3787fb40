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
	"io/fs"
	"log/slog"
	"time"

	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/strategy"
)

// DefaultStageTimeout bounds each external call (parse, extract, embed,
// store) for a single file.
const DefaultStageTimeout = 2 * time.Minute

// Orchestrator drives one file through the pipeline stages:
// parse, extract, chunk, embed, store.
//
// Parse, chunk and store failures are fatal for the file. Extraction
// failures are recorded as metadata. Embedding failures drop the
// affected chunk; the file only fails when no chunk survives.
type Orchestrator struct {
	source       fs.FS
	aggregator   *Aggregator
	stageTimeout time.Duration
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithStageTimeout bounds each external call of the pipeline.
// Default is DefaultStageTimeout.
func WithStageTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) error {
		if timeout <= 0 {
			timeout = DefaultStageTimeout
		}
		o.stageTimeout = timeout
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates an orchestrator reading file contents from
// the given source filesystem.
func NewOrchestrator(source fs.FS, opts ...Option) (*Orchestrator, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	o := &Orchestrator{
		source:       source,
		aggregator:   NewAggregator(),
		stageTimeout: DefaultStageTimeout,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// IngestFile runs one file through every stage and fully replaces the
// chunks stored under its identifier. Re-ingesting the same file is
// idempotent: the stored state always reflects the latest run only.
func (o *Orchestrator) IngestFile(ctx context.Context, fileID core.ID, resolved *strategy.Resolved, file core.FileRef) (*core.FileResult, error) {
	state := StatePending
	logger := o.logger.With("path", file.Path, "strategy", resolved.Name)

	// Parse
	doc, err := o.parse(ctx, resolved, file)
	if err != nil {
		logger.Error("parse failed", "state", state.String(), "err", err)
		return nil, failStage(StageParse, file.Path, err)
	}
	state = StateParsed
	logger.Debug("parsed", "state", state.String(), "title", doc.Title, "bytes", len(doc.Content))

	// Extract (best-effort)
	extractCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	extraction := o.aggregator.Aggregate(extractCtx, doc, resolved)
	cancel()
	state = StateExtracted
	logger.Debug("extracted", "state", state.String(),
		"fields", len(extraction.Fields), "errors", len(extraction.Errors))

	// Chunk
	chunkCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	chunks, err := resolved.Chunker.Chunk(chunkCtx, doc)
	cancel()
	if err != nil {
		logger.Error("chunking failed", "state", state.String(), "err", err)
		return nil, failStage(StageChunk, file.Path, joinStage(ErrChunk, err))
	}
	state = StateChunked
	logger.Debug("chunked", "state", state.String(), "chunks", len(chunks))

	// Assign identity and metadata before embedding so dropped chunks
	// never shift the ordinals of their neighbors.
	o.finalizeChunks(fileID, doc, extraction, chunks)

	// Embed
	var survivors []*core.Chunk
	var dropped int
	if len(chunks) > 0 {
		survivors, dropped, err = o.embed(ctx, resolved, chunks)
		if err != nil {
			logger.Error("embedding failed", "state", state.String(), "err", err)
			return nil, failStage(StageEmbed, file.Path, err)
		}
	}
	state = StateEmbedded
	logger.Debug("embedded", "state", state.String(),
		"chunks", len(survivors), "dropped", dropped)

	// Store: full replacement under the file identifier. An empty
	// chunk set still replaces, clearing whatever an earlier run left.
	storeCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	err = resolved.Store.ReplaceFileChunks(storeCtx, fileID, survivors)
	cancel()
	if err != nil {
		logger.Error("store failed", "state", state.String(), "err", err)
		return nil, failStage(StageStore, file.Path, joinStage(ErrStore, err))
	}
	state = StateStored
	logger.Info("file ingested", "state", state.String(),
		"chunks", len(survivors), "dropped", dropped)

	return &core.FileResult{
		Path:     file.Path,
		Id:       fileID,
		Strategy: resolved.Name,
		Chunks:   len(survivors),
		Dropped:  dropped,
	}, nil
}

// parse opens the file from the source and runs the parser under the
// stage timeout. Open failures count as parse failures.
func (o *Orchestrator) parse(ctx context.Context, resolved *strategy.Resolved, file core.FileRef) (*core.Document, error) {
	f, err := o.source.Open(file.Path)
	if err != nil {
		return nil, joinStage(ErrParse, err)
	}
	defer f.Close()

	parseCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	doc, err := resolved.Parser.Parse(parseCtx, file, f)
	if err != nil {
		return nil, joinStage(ErrParse, err)
	}
	if err := core.ValidateDocument(doc); err != nil {
		return nil, joinStage(ErrParse, err)
	}
	return doc, nil
}

// finalizeChunks assigns identity, ordinals, timestamps and merged
// metadata. Metadata precedence, lowest to highest: document metadata,
// extraction fields, chunk-local metadata.
func (o *Orchestrator) finalizeChunks(fileID core.ID, doc *core.Document, extraction core.ExtractionResult, chunks []core.Chunk) {
	now := time.Now().UTC()
	extractorErrors := ErrorsField(extraction)

	for i := range chunks {
		chunk := &chunks[i]

		metadata := make(map[string]string, len(doc.Metadata)+len(extraction.Fields)+len(chunk.Metadata)+2)
		metadata["source"] = doc.File.Path
		for field, value := range doc.Metadata {
			metadata[field] = value
		}
		for field, value := range extraction.Fields {
			metadata[field] = value
		}
		for field, value := range chunk.Metadata {
			metadata[field] = value
		}
		if extractorErrors != "" {
			metadata[ExtractorErrorsField] = extractorErrors
		}

		chunk.Ordinal = i
		chunk.Id = core.ChunkIdentifier(fileID, i, chunk.Text)
		chunk.FileId = fileID
		chunk.Metadata = metadata
		chunk.InsertedAt = now
		chunk.UpdatedAt = now
	}
}

// embed generates vectors for every chunk, batch first and per chunk
// on batch failure. Chunks whose embedding fails are dropped; the
// whole stage fails only when nothing survives.
func (o *Orchestrator) embed(ctx context.Context, resolved *strategy.Resolved, chunks []core.Chunk) ([]*core.Chunk, int, error) {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	batchCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	vectors, err := resolved.Embedder.EmbedTexts(batchCtx, texts)
	cancel()

	if err == nil && len(vectors) == len(chunks) {
		survivors := make([]*core.Chunk, 0, len(chunks))
		dropped := 0
		for i := range chunks {
			if len(vectors[i]) == 0 {
				dropped++
				continue
			}
			chunks[i].Vector = core.NormalizeVector(vectors[i])
			survivors = append(survivors, &chunks[i])
		}
		if len(survivors) == 0 {
			return nil, dropped, ErrEmbed
		}
		return survivors, dropped, nil
	}

	if err != nil {
		o.logger.Warn("batch embedding failed, falling back to per-chunk", "err", err)
	} else {
		o.logger.Warn("batch embedding result mismatch, falling back to per-chunk",
			"expected", len(chunks), "received", len(vectors))
	}

	survivors := make([]*core.Chunk, 0, len(chunks))
	dropped := 0
	for i := range chunks {
		chunkCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
		vector, err := resolved.Embedder.EmbedText(chunkCtx, chunks[i].Text)
		cancel()
		if err != nil || len(vector) == 0 {
			dropped++
			o.logger.Warn("dropping chunk, embedding failed",
				"ordinal", chunks[i].Ordinal, "err", err)
			continue
		}
		chunks[i].Vector = core.NormalizeVector(vector)
		survivors = append(survivors, &chunks[i])
	}

	if len(survivors) == 0 {
		return nil, dropped, ErrEmbed
	}
	return survivors, dropped, nil
}
