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


package strategy

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// Resolver turns strategy references into live component sets.
//
// Resolution precedence for a file:
//  1. The file's own strategy reference, when set.
//  2. The dataset's default strategy reference, when set.
//  3. The built-in universal strategy.
//
// A reference that is set but matches no declared strategy fails with
// a *NotFoundError; references are never silently corrected.
type Resolver struct {
	registry *component.Registry
	specs    map[string]Spec
	names    []string
	logger   *slog.Logger
}

// NewResolver creates a resolver over the declared strategy specs.
// Spec names must be non-empty and unique.
func NewResolver(registry *component.Registry, specs []Spec) (*Resolver, error) {
	byName := make(map[string]Spec, len(specs))
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, ErrEmptyStrategyName
		}
		if _, exists := byName[spec.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStrategy, spec.Name)
		}
		byName[spec.Name] = spec
		names = append(names, spec.Name)
	}
	sort.Strings(names)

	return &Resolver{
		registry: registry,
		specs:    byName,
		names:    names,
		logger:   slog.Default().With("component", "strategy-resolver"),
	}, nil
}

// Names returns the declared strategy names, sorted.
func (r *Resolver) Names() []string {
	return append([]string{}, r.names...)
}

// Validate checks a strategy reference without resolving components.
// An empty reference is valid and selects the universal strategy.
func (r *Resolver) Validate(ref string) error {
	if ref == "" {
		return nil
	}
	if _, ok := r.specs[ref]; !ok {
		return &NotFoundError{Requested: ref, Available: r.Names()}
	}
	return nil
}

// EffectiveName reports which strategy name a dataset reference selects,
// without resolving components. Empty references select the universal
// strategy.
func (r *Resolver) EffectiveName(ref string) string {
	if ref == "" {
		return UniversalName
	}
	return ref
}

// ResolveFile resolves the strategy for one file. datasetRef is the
// dataset's default strategy reference, empty when the dataset sets
// none. The file's own reference takes precedence over the dataset's.
func (r *Resolver) ResolveFile(datasetRef string, file core.FileRef) (*Resolved, error) {
	ref := file.Strategy
	if ref == "" {
		ref = datasetRef
	}

	if ref == "" {
		return r.resolve(UniversalSpec(), file)
	}

	spec, ok := r.specs[ref]
	if !ok {
		return nil, &NotFoundError{Requested: ref, Available: r.Names()}
	}
	return r.resolve(spec, file)
}

// resolve instantiates every component the spec names. Parser, chunker,
// embedder and store must exist; extractors are best-effort.
func (r *Resolver) resolve(spec Spec, file core.FileRef) (*Resolved, error) {
	parserName := spec.Parser
	if parserName == "" {
		parserName = r.detectParser(file.Path)
	}

	parser, err := r.registry.Parser(parserName)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", spec.Name, err)
	}
	chunker, err := r.registry.Chunker(spec.Chunker)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", spec.Name, err)
	}
	embedder, err := r.registry.Embedder(spec.Embedder)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", spec.Name, err)
	}
	store, err := r.registry.Store(spec.Store)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", spec.Name, err)
	}

	resolved := &Resolved{
		Name:         spec.Name,
		ParserName:   parserName,
		Parser:       parser,
		ChunkerName:  spec.Chunker,
		Chunker:      chunker,
		EmbedderName: spec.Embedder,
		Embedder:     embedder,
		StoreName:    spec.Store,
		Store:        store,
	}

	for _, name := range spec.Extractors {
		extractor, err := r.registry.Extractor(name)
		if err != nil {
			r.logger.Warn("extractor not registered, skipping",
				"strategy", spec.Name,
				"extractor", name)
			resolved.MissingExtractors = append(resolved.MissingExtractors, name)
			continue
		}
		resolved.Extractors = append(resolved.Extractors, NamedExtractor{
			Name:      name,
			Extractor: extractor,
		})
	}

	r.logger.Debug("resolved strategy",
		"strategy", spec.Name,
		"path", file.Path,
		"parser", parserName)
	return resolved, nil
}

// detectParser picks a parser by file extension, scanning registered
// parser tags. Parsers are scanned in name order so detection is
// deterministic when two parsers claim the same extension.
func (r *Resolver) detectParser(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return FallbackParser
	}
	for _, desc := range r.registry.Descriptors(component.KindParser) {
		for _, tag := range desc.Tags {
			if tag == ext {
				return desc.Name
			}
		}
	}
	return FallbackParser
}
