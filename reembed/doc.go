// Package reembed provides functionality for reembedding existing chunks
// with new or updated embedding models.
//
// This package supports batch processing of chunks, progress tracking, and
// retry logic with exponential backoff. Vectors are normalized after
// embedding so cosine similarity search keeps working across model changes.
package reembed
