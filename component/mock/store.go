package mock

import (
	"context"
	"sync"

	"github.com/poiesic/librit/core"
)

// MockStore is a test double for component.Store.
// It keeps chunks in memory so tests can assert on the stored state.
type MockStore struct {
	// ReplaceFunc is called by ReplaceFileChunks if set.
	// If nil, uses the in-memory default.
	ReplaceFunc func(ctx context.Context, fileID core.ID, chunks []*core.Chunk) error

	mu        sync.Mutex
	files     map[core.ID][]*core.Chunk
	callCount int
}

// NewMockStore creates a mock store backed by an in-memory map.
// Note: Returns concrete type to allow test assertions.
func NewMockStore() *MockStore {
	return &MockStore{
		files: make(map[core.ID][]*core.Chunk),
	}
}

// ReplaceFileChunks replaces all chunks held for the file identifier.
// An empty chunk set removes the file entirely.
func (m *MockStore) ReplaceFileChunks(ctx context.Context, fileID core.ID, chunks []*core.Chunk) error {
	m.mu.Lock()
	m.callCount++
	fn := m.ReplaceFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, fileID, chunks)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(chunks) == 0 {
		delete(m.files, fileID)
		return nil
	}
	m.files[fileID] = append([]*core.Chunk{}, chunks...)
	return nil
}

// FileChunks returns the chunks currently held for a file identifier.
func (m *MockStore) FileChunks(fileID core.ID) []*core.Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*core.Chunk{}, m.files[fileID]...)
}

// FileCount returns the number of files with stored chunks.
func (m *MockStore) FileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// CallCount returns the number of times ReplaceFileChunks was called.
func (m *MockStore) CallCount() int {
	return m.callCount
}

// Reset clears the stored chunks, call count and custom function.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[core.ID][]*core.Chunk)
	m.callCount = 0
	m.ReplaceFunc = nil
}
