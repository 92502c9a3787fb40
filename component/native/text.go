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


package native

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// TextParser reads a file verbatim as plain text.
// It is the fallback parser for unrecognized file extensions.
type TextParser struct{}

// NewTextParser creates a parser for plain text files.
func NewTextParser() component.Parser {
	return &TextParser{}
}

// Parse reads the entire input and returns it as document content.
// The title is the file's base name without extension.
func (p *TextParser) Parse(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &core.Document{
		File:    file,
		Title:   baseName(file.Path),
		Content: string(data),
		Metadata: map[string]string{
			"format": "text",
		},
	}, nil
}

// baseName returns the file name without directory or extension.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
