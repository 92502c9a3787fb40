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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/strategy"
)

// ExtractorErrorsField is the metadata field that carries extractor
// failures. Extraction is best-effort: a failing extractor is recorded
// here instead of failing the file.
const ExtractorErrorsField = "extractor_errors"

// Aggregator runs a strategy's extractors over a document and merges
// their fields. Extractors run in declaration order and later
// extractors win field conflicts.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an extractor aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		logger: slog.Default().With("component", "extractor-aggregator"),
	}
}

// Aggregate runs the resolved extractors over the document.
// Failures never abort the pipeline: each failing extractor adds an
// entry to the result's Errors, as does each missing extractor name.
func (a *Aggregator) Aggregate(ctx context.Context, doc *core.Document, resolved *strategy.Resolved) core.ExtractionResult {
	result := core.ExtractionResult{
		Fields:     map[string]string{},
		Provenance: map[string]string{},
	}

	for _, missing := range resolved.MissingExtractors {
		result.Errors = append(result.Errors, core.ExtractorError{
			Extractor: missing,
			Reason:    "extractor not registered",
		})
	}

	for _, named := range resolved.Extractors {
		fields, err := named.Extractor.Extract(ctx, doc)
		if err != nil {
			a.logger.Warn("extractor failed",
				"extractor", named.Name,
				"path", doc.File.Path,
				"err", err)
			result.Errors = append(result.Errors, core.ExtractorError{
				Extractor: named.Name,
				Reason:    err.Error(),
			})
			continue
		}

		for field, value := range fields {
			if prev, ok := result.Provenance[field]; ok && prev != named.Name {
				a.logger.Debug("extractor field overridden",
					"field", field,
					"winner", named.Name,
					"loser", prev)
			}
			result.Fields[field] = value
			result.Provenance[field] = named.Name
		}
	}

	return result
}

// ErrorsField renders extractor errors as a single metadata value, or
// "" when every extractor succeeded.
func ErrorsField(result core.ExtractionResult) string {
	if len(result.Errors) == 0 {
		return ""
	}
	parts := make([]string, len(result.Errors))
	for i, e := range result.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Extractor, e.Reason)
	}
	return strings.Join(parts, "; ")
}
