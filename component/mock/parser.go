package mock

import (
	"context"
	"io"

	"github.com/poiesic/librit/core"
)

// MockParser is a test double for component.Parser.
// It allows custom behavior injection via function fields.
type MockParser struct {
	// ParseFunc is called by Parse if set.
	// If nil, uses default behavior.
	ParseFunc func(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error)

	callCount int
}

// NewMockParser creates a mock parser with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockParser() *MockParser {
	return &MockParser{}
}

// Parse returns a document whose content is the raw bytes of the reader.
func (m *MockParser) Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
	m.callCount++

	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, file, r)
	}

	// Default: pass the input through unchanged
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &core.Document{
		File:     file,
		Title:    file.Path,
		Content:  string(data),
		Metadata: map[string]string{},
	}, nil
}

// CallCount returns the number of times Parse was called.
func (m *MockParser) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockParser) Reset() {
	m.callCount = 0
	m.ParseFunc = nil
}
