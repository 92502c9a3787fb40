package component

import (
	"context"
	"io"

	"github.com/poiesic/librit/core"
)

// Parser converts raw file content into a normalized document.
// Implementations must be thread-safe for concurrent use.
type Parser interface {
	// Parse reads raw content from r and produces the normalized document
	// for the given file. The file reference supplies the path (and thus the
	// extension) when format decisions depend on it.
	// Returns an error if the content cannot be parsed.
	Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error)
}

// Extractor produces structured metadata fields from a parsed document.
// Implementations must be thread-safe for concurrent use.
type Extractor interface {
	// Extract analyzes the document and returns a partial field mapping.
	// Returning an empty map is valid; it contributes nothing to the merge.
	// Returns an error if extraction fails; extraction failures are
	// best-effort and never fail the file.
	Extract(ctx context.Context, doc *core.Document) (map[string]string, error)
}

// Chunker splits a normalized document into an ordered sequence of chunks.
// Implementations must be thread-safe for concurrent use.
type Chunker interface {
	// Chunk splits the document. Implementations fill Text, and may attach
	// chunk-local metadata; identity, ordinals, and inherited document
	// metadata are assigned by the orchestration layer.
	// An empty document may legitimately yield zero chunks.
	Chunk(ctx context.Context, doc *core.Document) ([]core.Chunk, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Store persists chunks, vectors, and metadata keyed by file identifier.
// Implementations must be thread-safe for concurrent use.
type Store interface {
	// ReplaceFileChunks atomically replaces all stored chunks for the given
	// file identifier with the provided set. Passing an empty set clears the
	// file's chunks. Replacement semantics make re-ingestion idempotent.
	ReplaceFileChunks(ctx context.Context, fileID core.ID, chunks []*core.Chunk) error
}

// Factory functions produce component instances on resolution. A factory may
// return a shared instance or a fresh one per call; the registry does not
// cache.
type (
	ParserFactory    func() (Parser, error)
	ExtractorFactory func() (Extractor, error)
	ChunkerFactory   func() (Chunker, error)
	EmbedderFactory  func() (Embedder, error)
	StoreFactory     func() (Store, error)
)
