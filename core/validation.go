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


package core

import "fmt"

// ValidateFileRef validates a FileRef according to domain rules.
//
// Validation rules:
//   - Path must not be empty
//
// NOT validated:
//   - Strategy (empty means the dataset default applies; existence of a named
//     strategy is a resolution concern, not a data concern)
func ValidateFileRef(file FileRef) error {
	if file.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFileRef, ErrEmptyPath)
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - The originating file reference must be valid
//
// NOT validated:
//   - Content (an empty document is legal and simply yields zero chunks)
//   - Title and Metadata (optional, parser-dependent)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if err := ValidateFileRef(doc.File); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Ordinal must not be negative
//   - FileId must be set
//
// NOT validated (populated by later stages):
//   - Vector (can be empty until the embed stage runs)
//   - Id (assigned by the orchestrator from file identity and position)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if chunk.Ordinal < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeOrdinal)
	}

	if chunk.FileId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrMissingFileId)
	}

	return nil
}
