// Package mock provides test double implementations of the component interfaces.
//
// This package contains mock implementations of component.Parser,
// component.Extractor, component.Chunker, component.Embedder and
// component.Store for use in unit tests. The mocks allow tests to run
// without external services and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	embedder := mock.NewMockEmbedder()
//	vector, err := embedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
//	// Full pipeline wiring
//	suite := mock.NewSuite()
//	reg := component.NewRegistry()
//	err := suite.Register(reg)
//	reg.Seal()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockParser: Returns the raw input as document content
//   - MockExtractor: Reports title and word count fields
//   - MockChunker: One chunk per non-empty paragraph
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockStore: Keeps chunks in an inspectable in-memory map
//   - Suite: Aggregates one mock per stage under the universal names
package mock
