package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FileIdentifier derives the stable identifier for a dataset file from its
// fully qualified name. The same file path in different datasets yields
// different identifiers, so stores keyed by file identifier never collide
// across datasets.
func FileIdentifier(namespace, project, dataset, path string) ID {
	return IDFromContent(strings.Join([]string{namespace, project, dataset, path}, "/"))
}

// ChunkIdentifier derives a chunk identifier from its owning file, position,
// and text. Unchanged chunk text at the same position keeps its identifier
// across re-ingestions.
func ChunkIdentifier(fileID ID, ordinal int, text string) ID {
	return IDFromContent(fmt.Sprintf("%d/%d/%s", fileID, ordinal, text))
}

// FileRef identifies one file within a dataset declaration.
type FileRef struct {
	Path     string
	Strategy string // optional per-file strategy reference; empty means use the dataset default
}

// Document is the normalized representation a parser produces from raw file
// content. Everything downstream of parsing operates on Documents only.
type Document struct {
	File     FileRef
	Title    string
	Content  string
	Metadata map[string]string // parser-level metadata (e.g., "format", "pages")
}

// Chunk is a segment of a normalized document, the unit of embedding and
// storage. Chunks inherit the merged extraction metadata of their document.
type Chunk struct {
	Id         ID
	FileId     ID
	Ordinal    int // position within the document, 0-based
	Text       string
	Vector     []float32 // embedding vector (populated by the embed stage)
	Metadata   map[string]string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// ExtractorError records one extractor that failed during aggregation.
type ExtractorError struct {
	Extractor string
	Reason    string
}

// ExtractionResult is the merged output of all extractors that ran against a
// document: a field mapping plus the provenance of each field (which
// extractor produced the winning value).
type ExtractionResult struct {
	Fields     map[string]string
	Provenance map[string]string
	Errors     []ExtractorError
}

// FileResult describes one successfully ingested file.
type FileResult struct {
	Path     string
	Id       ID
	Strategy string // resolved strategy name for this file
	Chunks   int    // chunks stored
	Dropped  int    // chunks dropped by per-chunk embedding failures
}

// FileFailure describes one file that failed, with the stage that failed and
// a human-readable reason.
type FileFailure struct {
	Path   string
	Stage  string
	Reason string
}

// IngestionRecord is the dataset-level result of one ingestion invocation.
// It is created per invocation and never mutated after the invocation
// completes.
type IngestionRecord struct {
	Id         ID
	Namespace  string
	Project    string
	Dataset    string
	Strategy   string // dataset-level effective strategy name
	Processed  []FileResult
	Failed     []FileFailure
	StartedAt  time.Time
	FinishedAt time.Time
	Cancelled  bool
}

// Message renders the human-readable summary of the invocation.
func (r *IngestionRecord) Message() string {
	total := len(r.Processed) + len(r.Failed)
	msg := fmt.Sprintf("ingested %d of %d files for %s/%s/%s using strategy %q",
		len(r.Processed), total, r.Namespace, r.Project, r.Dataset, r.Strategy)
	if len(r.Failed) > 0 {
		msg += fmt.Sprintf(" (%d failed)", len(r.Failed))
	}
	if r.Cancelled {
		msg += " (cancelled)"
	}
	return msg
}

// ProcessedPaths returns the paths of all successfully ingested files in
// completion order.
func (r *IngestionRecord) ProcessedPaths() []string {
	paths := make([]string, 0, len(r.Processed))
	for _, f := range r.Processed {
		paths = append(paths, f.Path)
	}
	return paths
}

// SimilarityMatch represents a chunk match from vector similarity search.
type SimilarityMatch struct {
	ChunkId ID
	Score   float32
}

// SearchResult represents a search result with the full chunk and relevance score.
type SearchResult struct {
	Chunk *Chunk
	Score float32
}
