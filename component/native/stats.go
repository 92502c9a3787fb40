package native

import (
	"context"
	"strconv"
	"strings"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// ContentStatsExtractor derives size statistics from document content.
type ContentStatsExtractor struct{}

// NewContentStatsExtractor creates the content-stats extractor.
func NewContentStatsExtractor() component.Extractor {
	return &ContentStatsExtractor{}
}

// Extract returns byte, word and line counts for the content.
// It never fails.
func (e *ContentStatsExtractor) Extract(ctx context.Context, doc *core.Document) (map[string]string, error) {
	content := doc.Content
	lines := 0
	if content != "" {
		lines = strings.Count(content, "\n")
		if !strings.HasSuffix(content, "\n") {
			lines++
		}
	}

	return map[string]string{
		"bytes": strconv.Itoa(len(content)),
		"words": strconv.Itoa(len(strings.Fields(content))),
		"lines": strconv.Itoa(lines),
	}, nil
}
