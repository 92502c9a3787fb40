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


// Package component defines the capability contracts of the ingestion
// pipeline stages and the registry that maps component names to factories.
//
// Each pipeline stage has a fixed interface contract:
//
//   - Parser: raw file content -> normalized Document
//   - Extractor: Document -> partial metadata field mapping
//   - Chunker: Document -> ordered sequence of Chunks
//   - Embedder: text -> embedding vector
//   - Store: file identifier + chunks -> persisted, fully replacing prior chunks
//
// Concrete components are selected by name through the Registry, never
// through type inspection. Adding a new component is a registration, not a
// change to orchestration code.
//
// # Registry Lifecycle
//
// The registry has two phases. During initialization, components are
// registered under a (kind, name) pair; registering the same pair twice
// fails with ErrDuplicateComponent. Calling Seal ends the registration
// phase. After Seal the registry is read-only: registration fails with
// ErrRegistrySealed, and lookups are served without locking, so concurrent
// resolution from many ingestion invocations is safe and cheap.
//
//	reg := component.NewRegistry()
//	err := reg.RegisterParser("text", func() (component.Parser, error) {
//	    return native.NewTextParser(), nil
//	}, ".txt", ".log")
//	reg.Seal()
//
// Factories receive no arguments; configuration is bound by closing over it
// at registration time. A factory may return a shared instance or a fresh
// one per resolution.
//
// # Capability Tags
//
// Registration accepts optional capability tags describing what a component
// accepts. Parser tags list file extensions and drive the universal
// strategy's parser auto-detection; tags on other kinds are informational.
//
// # Implementation Packages
//
// The component package includes three implementation sub-packages:
//
//   - component/native: parsers and extractors with no external service
//     dependencies (plain text, markdown, file and content metadata)
//   - component/langchain: parsers, chunkers, the embedder, and the LLM
//     keyword extractor built on langchaingo
//   - component/mock: test doubles for unit testing without external
//     dependencies
//
// Mock constructors return CONCRETE types to enable test assertions and
// behavior injection via function fields (CallCount, custom funcs, Reset);
// production constructors return interface types.
package component
