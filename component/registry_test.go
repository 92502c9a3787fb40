package component

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librit/core"
)

type stubParser struct{}

func (stubParser) Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
	return &core.Document{File: file}, nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, doc *core.Document) (map[string]string, error) {
	return map[string]string{}, nil
}

type stubChunker struct{}

func (stubChunker) Chunk(ctx context.Context, doc *core.Document) ([]core.Chunk, error) {
	return nil, nil
}

type stubEmbedder struct{}

func (stubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return []float32{1}, nil
}

func (stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)), nil
}

type stubStore struct{}

func (stubStore) ReplaceFileChunks(ctx context.Context, fileID core.ID, chunks []*core.Chunk) error {
	return nil
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	require.NoError(t, reg.RegisterParser("text", func() (Parser, error) { return stubParser{}, nil }, ".txt"))
	require.NoError(t, reg.RegisterParser("pdf", func() (Parser, error) { return stubParser{}, nil }, ".pdf"))
	require.NoError(t, reg.RegisterExtractor("file-info", func() (Extractor, error) { return stubExtractor{}, nil }))
	require.NoError(t, reg.RegisterChunker("recursive", func() (Chunker, error) { return stubChunker{}, nil }))
	require.NoError(t, reg.RegisterEmbedder("openai", func() (Embedder, error) { return stubEmbedder{}, nil }))
	require.NoError(t, reg.RegisterStore("badger", func() (Store, error) { return stubStore{}, nil }))
	return reg
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := newTestRegistry(t)

	parser, err := reg.Parser("text")
	require.NoError(t, err)
	assert.NotNil(t, parser)

	extractor, err := reg.Extractor("file-info")
	require.NoError(t, err)
	assert.NotNil(t, extractor)

	chunker, err := reg.Chunker("recursive")
	require.NoError(t, err)
	assert.NotNil(t, chunker)

	embedder, err := reg.Embedder("openai")
	require.NoError(t, err)
	assert.NotNil(t, embedder)

	store, err := reg.Store("badger")
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.RegisterParser("text", func() (Parser, error) { return stubParser{}, nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateComponent)
	assert.Contains(t, err.Error(), "text")
}

func TestRegistry_SameNameDifferentKinds(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.RegisterParser("plain", func() (Parser, error) { return stubParser{}, nil }))
	require.NoError(t, reg.RegisterChunker("plain", func() (Chunker, error) { return stubChunker{}, nil }))
}

func TestRegistry_UnknownComponent(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Parser("nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownComponent)
	assert.Contains(t, err.Error(), "nonexistent")

	_, err = reg.Embedder("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownComponent)
}

func TestRegistry_Seal(t *testing.T) {
	reg := newTestRegistry(t)
	assert.False(t, reg.Sealed())

	reg.Seal()
	assert.True(t, reg.Sealed())

	t.Run("registration fails after seal", func(t *testing.T) {
		err := reg.RegisterParser("late", func() (Parser, error) { return stubParser{}, nil })
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRegistrySealed)
	})

	t.Run("resolution still works after seal", func(t *testing.T) {
		parser, err := reg.Parser("text")
		require.NoError(t, err)
		assert.NotNil(t, parser)
	})
}

func TestRegistry_ConcurrentResolutionAfterSeal(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Seal()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := reg.Parser("text"); err != nil {
					t.Error(err)
					return
				}
				if _, err := reg.Store("badger"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRegistry_Validation(t *testing.T) {
	reg := NewRegistry()

	t.Run("empty name", func(t *testing.T) {
		err := reg.RegisterParser("", func() (Parser, error) { return stubParser{}, nil })
		assert.ErrorIs(t, err, ErrEmptyComponentName)
	})

	t.Run("nil factory", func(t *testing.T) {
		err := reg.RegisterParser("text", nil)
		assert.ErrorIs(t, err, ErrNilFactory)
	})
}

func TestRegistry_Names(t *testing.T) {
	reg := newTestRegistry(t)

	names := reg.Names(KindParser)
	assert.Equal(t, []string{"pdf", "text"}, names)

	assert.Empty(t, reg.Names(Kind("bogus")))
}

func TestRegistry_Descriptors(t *testing.T) {
	reg := newTestRegistry(t)

	descs := reg.Descriptors(KindParser)
	require.Len(t, descs, 2)
	assert.Equal(t, "pdf", descs[0].Name)
	assert.Equal(t, KindParser, descs[0].Kind)
	assert.Equal(t, []string{".pdf"}, descs[0].Tags)
	assert.Equal(t, "text", descs[1].Name)
}

func TestRegistry_FactoryInvokedPerResolution(t *testing.T) {
	reg := NewRegistry()

	calls := 0
	require.NoError(t, reg.RegisterParser("counted", func() (Parser, error) {
		calls++
		return stubParser{}, nil
	}))

	_, err := reg.Parser("counted")
	require.NoError(t, err)
	_, err = reg.Parser("counted")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
