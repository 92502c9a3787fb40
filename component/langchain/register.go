package langchain

import "github.com/poiesic/librit/component"

// Register adds every langchaingo-backed component to the registry:
//
//   - parsers "pdf" (.pdf), "csv" (.csv), "html" (.html, .htm)
//   - chunkers "recursive", "markdown", "token"
//   - embedder "openai"
//   - extractor "keywords"
//
// Component construction is deferred to factory invocation, so
// registering never contacts the configured services.
func Register(reg *component.Registry, config *Config) error {
	if err := reg.RegisterParser("pdf", func() (component.Parser, error) {
		return NewPDFParser(), nil
	}, ".pdf"); err != nil {
		return err
	}
	if err := reg.RegisterParser("csv", func() (component.Parser, error) {
		return NewCSVParser(), nil
	}, ".csv"); err != nil {
		return err
	}
	if err := reg.RegisterParser("html", func() (component.Parser, error) {
		return NewHTMLParser(), nil
	}, ".html", ".htm"); err != nil {
		return err
	}
	if err := reg.RegisterChunker("recursive", func() (component.Chunker, error) {
		return NewRecursiveChunker(config)
	}); err != nil {
		return err
	}
	if err := reg.RegisterChunker("markdown", func() (component.Chunker, error) {
		return NewMarkdownChunker(config)
	}); err != nil {
		return err
	}
	if err := reg.RegisterChunker("token", func() (component.Chunker, error) {
		return NewTokenChunker(config)
	}); err != nil {
		return err
	}
	if err := reg.RegisterEmbedder("openai", func() (component.Embedder, error) {
		return NewEmbedder(config)
	}); err != nil {
		return err
	}
	return reg.RegisterExtractor("keywords", func() (component.Extractor, error) {
		return NewKeywordsExtractor(config)
	})
}
