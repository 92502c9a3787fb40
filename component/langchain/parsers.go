package langchain

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// PDFParser implements component.Parser for PDF files using the
// langchaingo PDF document loader. Pages are joined with blank lines.
type PDFParser struct {
	logger *slog.Logger
}

// NewPDFParser creates a parser for PDF files.
func NewPDFParser() component.Parser {
	return &PDFParser{logger: slog.Default().With("component", "pdf-parser")}
}

// Parse extracts the text of every page in the PDF.
func (p *PDFParser) Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
	// The PDF loader needs random access, so buffer the whole file
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	loader := documentloaders.NewPDF(bytes.NewReader(data), int64(len(data)))
	pages, err := loader.Load(ctx)
	if err != nil {
		p.logger.Error("failed to load pdf", "path", file.Path, "err", err)
		return nil, err
	}

	doc := assembleDocument(file, pages)
	doc.Metadata["format"] = "pdf"
	doc.Metadata["pages"] = strconv.Itoa(len(pages))
	return doc, nil
}

// CSVParser implements component.Parser for CSV files. Each row becomes
// a labeled segment of the document content.
type CSVParser struct {
	logger *slog.Logger
}

// NewCSVParser creates a parser for CSV files.
func NewCSVParser() component.Parser {
	return &CSVParser{logger: slog.Default().With("component", "csv-parser")}
}

// Parse loads every row of the CSV.
func (p *CSVParser) Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
	loader := documentloaders.NewCSV(r)
	rows, err := loader.Load(ctx)
	if err != nil {
		p.logger.Error("failed to load csv", "path", file.Path, "err", err)
		return nil, err
	}

	doc := assembleDocument(file, rows)
	doc.Metadata["format"] = "csv"
	doc.Metadata["rows"] = strconv.Itoa(len(rows))
	return doc, nil
}

// HTMLParser implements component.Parser for HTML files. Markup is
// stripped and only the readable text is kept.
type HTMLParser struct {
	logger *slog.Logger
}

// NewHTMLParser creates a parser for HTML files.
func NewHTMLParser() component.Parser {
	return &HTMLParser{logger: slog.Default().With("component", "html-parser")}
}

// Parse extracts the readable text from the HTML document.
func (p *HTMLParser) Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
	loader := documentloaders.NewHTML(r)
	sections, err := loader.Load(ctx)
	if err != nil {
		p.logger.Error("failed to load html", "path", file.Path, "err", err)
		return nil, err
	}

	doc := assembleDocument(file, sections)
	doc.Metadata["format"] = "html"
	return doc, nil
}

// assembleDocument joins loader output into a single document.
// Empty segments are dropped; the title falls back to the file name.
func assembleDocument(file core.FileRef, segments []schema.Document) *core.Document {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if content := strings.TrimSpace(seg.PageContent); content != "" {
			parts = append(parts, content)
		}
	}

	return &core.Document{
		File:     file,
		Title:    titleFromPath(file.Path),
		Content:  strings.Join(parts, "\n\n"),
		Metadata: map[string]string{},
	}
}

// titleFromPath returns the file name without directory or extension.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
