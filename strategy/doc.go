// Package strategy resolves strategy references into live component sets.
//
// A strategy names the parser, extractors, chunker, embedder and store
// used to ingest a file. Datasets and individual files reference
// strategies by name; the resolver applies a strict precedence:
//
//  1. The file's own strategy reference.
//  2. The dataset's default strategy reference.
//  3. The built-in universal strategy (auto-detected parser, standard
//     extractors, default chunker, embedder and store).
//
// References are taken literally. A reference that matches no declared
// strategy fails with *NotFoundError rather than being corrected, so a
// configuration typo surfaces as an error naming the declared
// strategies instead of silently ingesting with the wrong components.
package strategy
