package native

import "github.com/poiesic/librit/component"

// Register adds every native component to the registry:
//
//   - parser "text" (tagged .txt, .log)
//   - parser "markdown" (tagged .md, .markdown)
//   - extractor "file-info"
//   - extractor "content-stats"
func Register(reg *component.Registry) error {
	if err := reg.RegisterParser("text", func() (component.Parser, error) {
		return NewTextParser(), nil
	}, ".txt", ".log"); err != nil {
		return err
	}
	if err := reg.RegisterParser("markdown", func() (component.Parser, error) {
		return NewMarkdownParser(), nil
	}, ".md", ".markdown"); err != nil {
		return err
	}
	if err := reg.RegisterExtractor("file-info", func() (component.Extractor, error) {
		return NewFileInfoExtractor(), nil
	}); err != nil {
		return err
	}
	return reg.RegisterExtractor("content-stats", func() (component.Extractor, error) {
		return NewContentStatsExtractor(), nil
	})
}
