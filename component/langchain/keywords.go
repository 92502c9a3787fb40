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


package langchain

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
)

// KeywordsExtractor implements component.Extractor using OpenAI-compatible chat APIs.
// It asks an LLM for the document's topic and most important keywords.
type KeywordsExtractor struct {
	client        llms.Model
	minImportance int
	maxKeywords   int
	logger        *slog.Logger
}

// keyword is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type keyword struct {
	Keyword    string `json:"keyword"`
	Importance int    `json:"importance"`
}

// analysis is the wrapper structure for the LLM's JSON response.
type analysis struct {
	Topic    string    `json:"topic"`
	Keywords []keyword `json:"keywords"`
}

// newKeywordsExtractor is an internal constructor that returns the concrete type.
func newKeywordsExtractor(config *Config) (*KeywordsExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/extraction
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &KeywordsExtractor{
		client:        client,
		minImportance: config.MinImportance,
		maxKeywords:   config.MaxKeywords,
		logger:        slog.Default().With("component", "keywords-extractor"),
	}, nil
}

// NewKeywordsExtractor creates a new keyword extractor using the provided configuration.
//
// Returns component.Extractor interface to enforce abstraction.
func NewKeywordsExtractor(config *Config) (component.Extractor, error) {
	return newKeywordsExtractor(config)
}

// Extract asks the LLM for the document's topic and keywords.
// It applies importance filtering and returns the surviving keywords as a
// comma-separated "keywords" field plus a "topic" field.
func (e *KeywordsExtractor) Extract(ctx context.Context, doc *core.Document) (map[string]string, error) {
	// Clip input so large documents fit the model's context window
	text := clipText(doc.Content, maxPromptRunes)

	// Build the system and user prompts
	systemPrompt := buildSystemPrompt(e.maxKeywords)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result analysis
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return map[string]string{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Filter by importance, keep the strongest keywords first
	kept := make([]keyword, 0, len(result.Keywords))
	for _, k := range result.Keywords {
		if k.Importance >= e.minImportance && strings.TrimSpace(k.Keyword) != "" {
			kept = append(kept, k)
		}
	}
	slices.SortFunc(kept, func(a, b keyword) int {
		if a.Importance == b.Importance {
			return strings.Compare(a.Keyword, b.Keyword)
		}
		if a.Importance < b.Importance {
			return 1
		}
		return -1
	})
	if len(kept) > e.maxKeywords {
		kept = kept[:e.maxKeywords]
	}

	e.logger.Debug("extracted keywords",
		"total", len(result.Keywords),
		"filtered", len(kept))

	fields := map[string]string{}
	if topic := strings.TrimSpace(result.Topic); topic != "" {
		fields["topic"] = topic
	}
	if len(kept) > 0 {
		names := make([]string, len(kept))
		for i, k := range kept {
			names[i] = strings.ToLower(strings.TrimSpace(k.Keyword))
		}
		fields["keywords"] = strings.Join(names, ", ")
	}
	return fields, nil
}
