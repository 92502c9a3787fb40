// Package pipeline provides orchestration for ingesting files into the
// knowledge base.
//
// The Orchestrator drives a single file through the pipeline stages
// (parse, extract, chunk, embed, store), tracking a strict forward
// state machine. The Runner iterates a dataset's files in declaration
// order with per-file failure isolation, producing an IngestionRecord
// that reflects exactly what happened.
//
// Failure semantics differ by stage: parse, chunk and store failures
// are fatal for the file; extractor failures become metadata; a chunk
// whose embedding fails is dropped, and the file fails only when no
// chunk survives. Storage is a full replacement per file identifier, so
// re-ingesting a file never leaves stale chunks behind.
package pipeline
