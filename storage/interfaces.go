package storage

import (
	"context"

	"github.com/poiesic/librit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing stored chunks.
type ChunkRepository interface {
	Repository
	// ReplaceFileChunks atomically replaces all chunks stored for a file
	// with the provided set. Passing an empty set clears the file's chunks.
	// Chunk identity and timestamps are assigned by the caller and stored
	// as given.
	ReplaceFileChunks(ctx context.Context, fileID core.ID, chunks []*core.Chunk) error

	// GetFileChunks retrieves all chunks stored for a file, ordered by ordinal.
	// Returns an empty result if the file has no stored chunks.
	GetFileChunks(ctx context.Context, fileID core.ID) ([]*core.Chunk, error)

	// DeleteFileChunks removes all chunks stored for a file.
	// Removing a file with no stored chunks is not an error.
	DeleteFileChunks(ctx context.Context, fileID core.ID) error

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// GetAllChunks retrieves every stored chunk across all files.
	GetAllChunks(ctx context.Context) ([]*core.Chunk, error)

	// UpdateChunkVectors persists new embedding vectors for existing chunks.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunkVectors(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// FindSimilar finds chunks similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// RunRepository provides operations for managing ingestion records.
type RunRepository interface {
	Repository
	// SaveRun persists an ingestion record.
	// For records with ID=0, generates a new ID from sequence.
	// Returns the record with its ID populated.
	SaveRun(ctx context.Context, record *core.IngestionRecord) (*core.IngestionRecord, error)

	// GetRun retrieves a single ingestion record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.IngestionRecord, error)

	// ListRuns retrieves the N most recent ingestion records, ordered by
	// start time descending. Returns up to limit records.
	ListRuns(ctx context.Context, limit int) ([]*core.IngestionRecord, error)

	// ListDatasetRuns retrieves the N most recent ingestion records for a
	// single dataset, ordered by start time descending.
	ListDatasetRuns(ctx context.Context, namespace, project, dataset string, limit int) ([]*core.IngestionRecord, error)
}
