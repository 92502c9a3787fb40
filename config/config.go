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


package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/strategy"
)

// Project declares a namespace's ingestion configuration: the
// strategies it defines and the datasets it ingests.
type Project struct {
	Namespace string    `yaml:"namespace"`
	Name      string    `yaml:"project"`
	RAG       RAG       `yaml:"rag"`
	Datasets  []Dataset `yaml:"datasets"`
}

// RAG holds the retrieval configuration section.
type RAG struct {
	Strategies []Strategy `yaml:"strategies"`
}

// Strategy declares a named component selection.
// Parser may be empty to auto-detect by file extension; chunker,
// embedder and store are required.
type Strategy struct {
	Name       string   `yaml:"name"`
	Parser     string   `yaml:"parser"`
	Extractors []string `yaml:"extractors"`
	Chunker    string   `yaml:"chunker"`
	Embedder   string   `yaml:"embedder"`
	Store      string   `yaml:"store"`
}

// Dataset declares an ordered list of files to ingest together, with
// an optional default strategy reference.
type Dataset struct {
	Name        string `yaml:"name"`
	RAGStrategy string `yaml:"rag_strategy"`
	Files       []File `yaml:"files"`
}

// File declares one file of a dataset. In YAML it is either a bare
// path or a mapping with a per-file strategy override:
//
//	files:
//	  - guides/welcome.txt
//	  - path: scans/archive.pdf
//	    rag_strategy: legacy_pdf
type File struct {
	Path     string
	Strategy string
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (f *File) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Strategy = ""
		return value.Decode(&f.Path)
	}

	var aux struct {
		Path     string `yaml:"path"`
		Strategy string `yaml:"rag_strategy"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	f.Path = aux.Path
	f.Strategy = aux.Strategy
	return nil
}

// Validate checks the project declaration for structural problems:
// missing names, duplicate datasets, files without paths, and declared
// strategies missing required components.
func (p *Project) Validate() error {
	if p.Namespace == "" {
		return ErrMissingNamespace
	}
	if p.Name == "" {
		return ErrMissingProjectName
	}

	for _, s := range p.RAG.Strategies {
		if s.Name == "" {
			return ErrMissingStrategyName
		}
		if s.Chunker == "" || s.Embedder == "" || s.Store == "" {
			return fmt.Errorf("%w: strategy %q", ErrIncompleteStrategy, s.Name)
		}
	}

	seen := make(map[string]bool, len(p.Datasets))
	for _, d := range p.Datasets {
		if d.Name == "" {
			return ErrMissingDatasetName
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateDataset, d.Name)
		}
		seen[d.Name] = true

		for _, f := range d.Files {
			if f.Path == "" {
				return fmt.Errorf("%w: dataset %q", ErrMissingFilePath, d.Name)
			}
		}
	}
	return nil
}

// Dataset returns the named dataset declaration.
func (p *Project) Dataset(name string) (*Dataset, error) {
	for i := range p.Datasets {
		if p.Datasets[i].Name == name {
			return &p.Datasets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

// StrategySpecs converts the declared strategies for the resolver.
func (p *Project) StrategySpecs() []strategy.Spec {
	specs := make([]strategy.Spec, len(p.RAG.Strategies))
	for i, s := range p.RAG.Strategies {
		specs[i] = strategy.Spec{
			Name:       s.Name,
			Parser:     s.Parser,
			Extractors: append([]string{}, s.Extractors...),
			Chunker:    s.Chunker,
			Embedder:   s.Embedder,
			Store:      s.Store,
		}
	}
	return specs
}

// FileRefs converts the dataset's files, preserving declaration order.
func (d *Dataset) FileRefs() []core.FileRef {
	refs := make([]core.FileRef, len(d.Files))
	for i, f := range d.Files {
		refs[i] = core.FileRef{
			Path:     f.Path,
			Strategy: f.Strategy,
		}
	}
	return refs
}
