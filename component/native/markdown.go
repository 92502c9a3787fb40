package native

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// MarkdownParser reads Markdown files, using the first level-one
// heading as the document title when present.
type MarkdownParser struct{}

// NewMarkdownParser creates a parser for Markdown files.
func NewMarkdownParser() component.Parser {
	return &MarkdownParser{}
}

// Parse reads the entire input as Markdown. The content keeps its
// Markdown structure so structure-aware chunkers can use it.
func (p *MarkdownParser) Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	content := string(data)
	title := firstHeading(content)
	if title == "" {
		title = baseName(file.Path)
	}

	return &core.Document{
		File:    file,
		Title:   title,
		Content: content,
		Metadata: map[string]string{
			"format": "markdown",
		},
	}, nil
}

// firstHeading returns the text of the first level-one heading, or ""
// if the document has none.
func firstHeading(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}
