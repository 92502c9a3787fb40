package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceRequired is returned when a file source is not provided.
	ErrSourceRequired = errors.New("file source required")

	// ErrResolverRequired is returned when a strategy resolver is not provided.
	ErrResolverRequired = errors.New("strategy resolver required")

	// ErrOrchestratorRequired is returned when an orchestrator is not provided.
	ErrOrchestratorRequired = errors.New("orchestrator required")

	// ErrParse indicates the parse stage failed for a file.
	ErrParse = errors.New("parse failed")

	// ErrChunk indicates the chunking stage failed for a file.
	ErrChunk = errors.New("chunking failed")

	// ErrEmbed indicates no chunk of a file could be embedded.
	// Individual chunk embedding failures only drop the chunk; this
	// error means nothing survived.
	ErrEmbed = errors.New("embedding failed for every chunk")

	// ErrStore indicates the store stage failed for a file.
	ErrStore = errors.New("store failed")

	// ErrAllFilesFailed indicates a run in which not a single file was
	// ingested successfully.
	ErrAllFilesFailed = errors.New("all files failed")
)

// Stage names used in failure records. They match the pipeline states
// a file was trying to reach when it failed.
const (
	StageResolve = "resolve"
	StageParse   = "parse"
	StageChunk   = "chunk"
	StageEmbed   = "embed"
	StageStore   = "store"
)

// StageError records which stage failed for which file.
// The wrapped cause is reachable with errors.Is and errors.As.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Path, e.Err)
}

// Unwrap exposes the cause.
func (e *StageError) Unwrap() error {
	return e.Err
}

// failStage wraps a stage failure for a file.
func failStage(stage, path string, err error) *StageError {
	return &StageError{Stage: stage, Path: path, Err: err}
}

// joinStage attaches a stage sentinel to its cause so both match with
// errors.Is.
func joinStage(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
