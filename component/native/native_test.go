package native

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

func TestTextParser(t *testing.T) {
	parser := NewTextParser()
	file := core.FileRef{Path: "notes/todo.txt"}

	doc, err := parser.Parse(context.Background(), file, strings.NewReader("first line\nsecond line\n"))
	require.NoError(t, err)

	assert.Equal(t, file, doc.File)
	assert.Equal(t, "todo", doc.Title)
	assert.Equal(t, "first line\nsecond line\n", doc.Content)
	assert.Equal(t, "text", doc.Metadata["format"])
}

func TestTextParser_EmptyFile(t *testing.T) {
	parser := NewTextParser()

	doc, err := parser.Parse(context.Background(), core.FileRef{Path: "empty.txt"}, strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, "", doc.Content)
	assert.Equal(t, "empty", doc.Title)
}

func TestMarkdownParser_TitleFromHeading(t *testing.T) {
	parser := NewMarkdownParser()
	content := "preamble text\n\n# Getting Started\n\nBody paragraph.\n"

	doc, err := parser.Parse(context.Background(), core.FileRef{Path: "docs/guide.md"}, strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "Getting Started", doc.Title)
	assert.Equal(t, content, doc.Content, "Markdown structure should be preserved")
	assert.Equal(t, "markdown", doc.Metadata["format"])
}

func TestMarkdownParser_NoHeading(t *testing.T) {
	parser := NewMarkdownParser()

	doc, err := parser.Parse(context.Background(), core.FileRef{Path: "docs/guide.md"}, strings.NewReader("plain paragraph only\n"))
	require.NoError(t, err)

	assert.Equal(t, "guide", doc.Title, "should fall back to file base name")
}

func TestFileInfoExtractor(t *testing.T) {
	extractor := NewFileInfoExtractor()
	doc := &core.Document{
		File:  core.FileRef{Path: "manuals/setup/Install.MD"},
		Title: "Installation",
	}

	fields, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "Install.MD", fields["filename"])
	assert.Equal(t, ".md", fields["extension"], "extension should be lowercased")
	assert.Equal(t, "manuals/setup", fields["directory"])
	assert.Equal(t, "Installation", fields["title"])
}

func TestFileInfoExtractor_BarePath(t *testing.T) {
	extractor := NewFileInfoExtractor()
	doc := &core.Document{File: core.FileRef{Path: "readme.txt"}}

	fields, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)

	assert.NotContains(t, fields, "directory")
	assert.NotContains(t, fields, "title")
}

func TestContentStatsExtractor(t *testing.T) {
	extractor := NewContentStatsExtractor()
	doc := &core.Document{Content: "one two three\nfour five"}

	fields, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "23", fields["bytes"])
	assert.Equal(t, "5", fields["words"])
	assert.Equal(t, "2", fields["lines"])
}

func TestContentStatsExtractor_Empty(t *testing.T) {
	extractor := NewContentStatsExtractor()

	fields, err := extractor.Extract(context.Background(), &core.Document{})
	require.NoError(t, err)

	assert.Equal(t, "0", fields["bytes"])
	assert.Equal(t, "0", fields["words"])
	assert.Equal(t, "0", fields["lines"])
}

func TestRegister(t *testing.T) {
	reg := component.NewRegistry()
	require.NoError(t, Register(reg))

	assert.Equal(t, []string{"markdown", "text"}, reg.Names(component.KindParser))
	assert.Equal(t, []string{"content-stats", "file-info"}, reg.Names(component.KindExtractor))

	// Registered factories must produce working components.
	parser, err := reg.Parser("markdown")
	require.NoError(t, err)
	require.NotNil(t, parser)
}
