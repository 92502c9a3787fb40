package langchain

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// SplitterChunker implements component.Chunker on top of a langchaingo
// text splitter. The splitter decides the boundaries; the chunker only
// drops empty fragments.
type SplitterChunker struct {
	splitter textsplitter.TextSplitter
	logger   *slog.Logger
}

// newSplitterChunker wraps a text splitter as a chunker.
func newSplitterChunker(name string, splitter textsplitter.TextSplitter) *SplitterChunker {
	return &SplitterChunker{
		splitter: splitter,
		logger:   slog.Default().With("component", name),
	}
}

// NewRecursiveChunker creates a chunker that splits on paragraph, line
// and word boundaries in turn until chunks fit the configured size.
// This is the universal strategy's default chunker.
func NewRecursiveChunker(config *Config) (component.Chunker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(config.ChunkSize),
		textsplitter.WithChunkOverlap(config.ChunkOverlap),
	)
	return newSplitterChunker("recursive-chunker", splitter), nil
}

// NewMarkdownChunker creates a chunker that respects Markdown structure,
// keeping headings with the sections they introduce.
func NewMarkdownChunker(config *Config) (component.Chunker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	splitter := textsplitter.NewMarkdownTextSplitter(
		textsplitter.WithChunkSize(config.ChunkSize),
		textsplitter.WithChunkOverlap(config.ChunkOverlap),
	)
	return newSplitterChunker("markdown-chunker", splitter), nil
}

// NewTokenChunker creates a chunker that measures chunk size in model
// tokens rather than characters.
func NewTokenChunker(config *Config) (component.Chunker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	splitter := textsplitter.NewTokenSplitter(
		textsplitter.WithChunkSize(config.ChunkSize),
		textsplitter.WithChunkOverlap(config.ChunkOverlap),
	)
	return newSplitterChunker("token-chunker", splitter), nil
}

// Chunk splits the document content into chunks.
// Chunk identity, ordinals and metadata are assigned downstream.
func (c *SplitterChunker) Chunk(ctx context.Context, doc *core.Document) ([]core.Chunk, error) {
	parts, err := c.splitter.SplitText(doc.Content)
	if err != nil {
		c.logger.Error("failed to split text", "err", err)
		return nil, err
	}

	chunks := make([]core.Chunk, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, core.Chunk{Text: part})
	}

	c.logger.Debug("split document", "title", doc.Title, "chunks", len(chunks))
	return chunks, nil
}
