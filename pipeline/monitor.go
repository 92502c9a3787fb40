package pipeline

import (
	"fmt"
	"io"

	"github.com/poiesic/librit/core"
)

// Monitor provides hooks to observe an ingestion run.
// Implement this interface to track per-file progress while a run is
// still in flight.
type Monitor interface {
	RunStarted(namespace, project, dataset string, files int)
	FileStarted(path string)
	FileCompleted(result core.FileResult)
	FileFailed(failure core.FileFailure)
	RunFinished(record *core.IngestionRecord)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) RunStarted(_, _, _ string, _ int)     {}
func (n *noopMonitor) FileStarted(_ string)                 {}
func (n *noopMonitor) FileCompleted(_ core.FileResult)      {}
func (n *noopMonitor) FileFailed(_ core.FileFailure)        {}
func (n *noopMonitor) RunFinished(_ *core.IngestionRecord)  {}

// WriterMonitor reports run progress as text lines, typically to
// os.Stderr for command-line use.
type WriterMonitor struct {
	writer io.Writer
}

var _ Monitor = (*WriterMonitor)(nil)

// NewWriterMonitor creates a monitor writing progress lines to w.
func NewWriterMonitor(w io.Writer) *WriterMonitor {
	return &WriterMonitor{writer: w}
}

func (m *WriterMonitor) RunStarted(namespace, project, dataset string, files int) {
	fmt.Fprintf(m.writer, "Ingesting %s/%s/%s (%d files)\n", namespace, project, dataset, files)
}

func (m *WriterMonitor) FileStarted(path string) {
	fmt.Fprintf(m.writer, "  %s ...\n", path)
}

func (m *WriterMonitor) FileCompleted(result core.FileResult) {
	if result.Dropped > 0 {
		fmt.Fprintf(m.writer, "  %s: %d chunks (%d dropped) [%s]\n",
			result.Path, result.Chunks, result.Dropped, result.Strategy)
		return
	}
	fmt.Fprintf(m.writer, "  %s: %d chunks [%s]\n", result.Path, result.Chunks, result.Strategy)
}

func (m *WriterMonitor) FileFailed(failure core.FileFailure) {
	fmt.Fprintf(m.writer, "  %s: FAILED at %s: %s\n", failure.Path, failure.Stage, failure.Reason)
}

func (m *WriterMonitor) RunFinished(record *core.IngestionRecord) {
	fmt.Fprintf(m.writer, "%s\n", record.Message())
}
