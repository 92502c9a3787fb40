package native

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// FileInfoExtractor derives metadata fields from the file reference
// and parsed document: file name, extension, directory and title.
type FileInfoExtractor struct{}

// NewFileInfoExtractor creates the file-info extractor.
func NewFileInfoExtractor() component.Extractor {
	return &FileInfoExtractor{}
}

// Extract returns path-derived fields. It never fails.
func (e *FileInfoExtractor) Extract(ctx context.Context, doc *core.Document) (map[string]string, error) {
	path := doc.File.Path
	fields := map[string]string{
		"filename":  filepath.Base(path),
		"extension": strings.ToLower(filepath.Ext(path)),
	}
	if dir := filepath.Dir(path); dir != "." {
		fields["directory"] = dir
	}
	if doc.Title != "" {
		fields["title"] = doc.Title
	}
	return fields, nil
}
