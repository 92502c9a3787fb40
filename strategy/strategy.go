package strategy

import "github.com/poiesic/librit/component"

// UniversalName is the name reported for the built-in default strategy.
// It is not reference-addressable: only an unset strategy reference
// selects it, so a declared strategy can never be shadowed by it.
const UniversalName = "universal"

// FallbackParser is the parser used when extension auto-detection finds
// no match.
const FallbackParser = "text"

// Spec declares a strategy by naming the components of each pipeline
// stage. Specs come from project configuration; resolution turns them
// into live component sets.
type Spec struct {
	// Name identifies the strategy for datasets and files to reference.
	Name string

	// Parser names the parser component. Empty means auto-detect by
	// file extension.
	Parser string

	// Extractors names the extractor components, in declaration order.
	// Later extractors win metadata field conflicts.
	Extractors []string

	// Chunker names the chunker component.
	Chunker string

	// Embedder names the embedder component.
	Embedder string

	// Store names the store component.
	Store string
}

// UniversalSpec returns the built-in default strategy: auto-detected
// parser, the standard extractor pair, and the default chunker,
// embedder and store.
func UniversalSpec() Spec {
	return Spec{
		Name:       UniversalName,
		Parser:     "",
		Extractors: []string{"file-info", "content-stats"},
		Chunker:    "recursive",
		Embedder:   "openai",
		Store:      "badger",
	}
}

// NamedExtractor pairs an extractor with its registered name so
// aggregation can attribute fields and failures.
type NamedExtractor struct {
	Name      string
	Extractor component.Extractor
}

// Resolved is the live component set for one file, produced by the
// resolver from a Spec and the component registry.
type Resolved struct {
	// Name is the strategy name this set was resolved from.
	Name string

	// ParserName is the concrete parser chosen, after auto-detection.
	ParserName string
	Parser     component.Parser

	// Extractors holds the resolvable extractors in declaration order.
	Extractors []NamedExtractor

	// MissingExtractors lists declared extractor names absent from the
	// registry. Extraction is best-effort, so these are reported as
	// extractor errors instead of failing the file.
	MissingExtractors []string

	ChunkerName string
	Chunker     component.Chunker

	EmbedderName string
	Embedder     component.Embedder

	StoreName string
	Store     component.Store
}
