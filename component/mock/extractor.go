package mock

import (
	"context"
	"strconv"
	"strings"

	"github.com/poiesic/librit/core"
)

// MockExtractor is a test double for component.Extractor.
// It allows custom behavior injection via function fields.
type MockExtractor struct {
	// ExtractFunc is called by Extract if set.
	// If nil, uses default simple field extraction.
	ExtractFunc func(ctx context.Context, doc *core.Document) (map[string]string, error)

	callCount int
}

// NewMockExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// Extract derives simple mock fields from the document.
// Default behavior: reports title and word count.
func (m *MockExtractor) Extract(ctx context.Context, doc *core.Document) (map[string]string, error) {
	m.callCount++

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, doc)
	}

	// Default: derive trivial fields from the document text
	fields := map[string]string{
		"words": strconv.Itoa(len(strings.Fields(doc.Content))),
	}
	if doc.Title != "" {
		fields["title"] = doc.Title
	}
	return fields, nil
}

// CallCount returns the number of times Extract was called.
func (m *MockExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockExtractor) Reset() {
	m.callCount = 0
	m.ExtractFunc = nil
}
