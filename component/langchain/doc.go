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


// Package langchain provides pipeline components backed by the langchaingo library.
//
// This package implements parsers (PDF, CSV, HTML), chunkers (recursive,
// markdown, token) and AI-backed components (OpenAI-compatible embedder,
// LLM keyword extractor). The AI components communicate with OpenAI or
// OpenAI-compatible services (such as Ollama, LocalAI, or vLLM).
//
// # Usage
//
//	config := langchain.DefaultConfig()
//	// Or customize:
//	config := langchain.NewConfig(
//	    langchain.WithHost("http://localhost:11434"),  // /v1 added automatically
//	    langchain.WithEmbeddingModel("embeddinggemma"),
//	    langchain.WithChunkSize(512),
//	)
//
//	reg := component.NewRegistry()
//	if err := langchain.Register(reg, config); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Or construct components directly
//	embedder, err := langchain.NewEmbedder(config)
//	vector, err := embedder.EmbedText(ctx, "sample text")
package langchain
