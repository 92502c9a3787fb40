package pipeline

// State tracks how far a file has progressed through the pipeline.
// Files move strictly forward: PENDING, PARSED, EXTRACTED, CHUNKED,
// EMBEDDED, STORED, with FAILED terminal from any stage.
type State int

const (
	StatePending State = iota
	StateParsed
	StateExtracted
	StateChunked
	StateEmbedded
	StateStored
	StateFailed
)

// String returns the state name for logs and failure records.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateParsed:
		return "parsed"
	case StateExtracted:
		return "extracted"
	case StateChunked:
		return "chunked"
	case StateEmbedded:
		return "embedded"
	case StateStored:
		return "stored"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
