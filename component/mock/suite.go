// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/librit/component"

// Suite aggregates one mock component per pipeline stage.
// It registers them under the names the universal strategy resolves,
// so pipeline tests run without external services.
type Suite struct {
	Parser       *MockParser
	FileInfo     *MockExtractor
	ContentStats *MockExtractor
	Chunker      *MockChunker
	Embedder     *MockEmbedder
	Store        *MockStore
}

// NewSuite creates a suite with default mock components.
//
// Access the fields directly for test assertions and custom behavior
// injection; every component is a concrete mock type.
func NewSuite() *Suite {
	return &Suite{
		Parser:       NewMockParser(),
		FileInfo:     NewMockExtractor(),
		ContentStats: NewMockExtractor(),
		Chunker:      NewMockChunker(),
		Embedder:     NewMockEmbedder(),
		Store:        NewMockStore(),
	}
}

// Register registers the suite's components under the universal
// strategy's names:
//
//   - parser "text" (tagged .txt, .log, .md)
//   - extractors "file-info" and "content-stats"
//   - chunker "recursive"
//   - embedder "openai"
//   - store "badger"
//
// The registry is left unsealed so tests can add more components.
func (s *Suite) Register(reg *component.Registry) error {
	if err := reg.RegisterParser("text", func() (component.Parser, error) {
		return s.Parser, nil
	}, ".txt", ".log", ".md"); err != nil {
		return err
	}
	if err := reg.RegisterExtractor("file-info", func() (component.Extractor, error) {
		return s.FileInfo, nil
	}); err != nil {
		return err
	}
	if err := reg.RegisterExtractor("content-stats", func() (component.Extractor, error) {
		return s.ContentStats, nil
	}); err != nil {
		return err
	}
	if err := reg.RegisterChunker("recursive", func() (component.Chunker, error) {
		return s.Chunker, nil
	}); err != nil {
		return err
	}
	if err := reg.RegisterEmbedder("openai", func() (component.Embedder, error) {
		return s.Embedder, nil
	}); err != nil {
		return err
	}
	return reg.RegisterStore("badger", func() (component.Store, error) {
		return s.Store, nil
	})
}

// Reset resets every mock in the suite.
func (s *Suite) Reset() {
	s.Parser.Reset()
	s.FileInfo.Reset()
	s.ContentStats.Reset()
	s.Chunker.Reset()
	s.Embedder.Reset()
	s.Store.Reset()
}
