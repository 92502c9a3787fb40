package mock

import (
	"context"
	"strings"

	"github.com/poiesic/librit/core"
)

// MockChunker is a test double for component.Chunker.
// It allows custom behavior injection via function fields.
type MockChunker struct {
	// ChunkFunc is called by Chunk if set.
	// If nil, uses default paragraph splitting.
	ChunkFunc func(ctx context.Context, doc *core.Document) ([]core.Chunk, error)

	callCount int
}

// NewMockChunker creates a mock chunker with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockChunker() *MockChunker {
	return &MockChunker{}
}

// Chunk splits the document into mock chunks.
// Default behavior: one chunk per non-empty paragraph.
func (m *MockChunker) Chunk(ctx context.Context, doc *core.Document) ([]core.Chunk, error) {
	m.callCount++

	if m.ChunkFunc != nil {
		return m.ChunkFunc(ctx, doc)
	}

	// Default: split on blank lines, drop empty paragraphs
	chunks := []core.Chunk{}
	for _, para := range strings.Split(doc.Content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		chunks = append(chunks, core.Chunk{Text: para})
	}
	return chunks, nil
}

// CallCount returns the number of times Chunk was called.
func (m *MockChunker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockChunker) Reset() {
	m.callCount = 0
	m.ChunkFunc = nil
}
