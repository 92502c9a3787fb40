package pipeline

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/component/mock"
	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/strategy"
)

// recordingMonitor captures the order of monitor callbacks so tests can
// assert on incremental progress.
type recordingMonitor struct {
	mu        sync.Mutex
	completed []string
	failed    []core.FileFailure
	progress  [][]string // snapshot of completed paths after each completion
	finished  *core.IngestionRecord
}

var _ Monitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) RunStarted(_, _, _ string, _ int) {}
func (m *recordingMonitor) FileStarted(_ string)             {}

func (m *recordingMonitor) FileCompleted(result core.FileResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, result.Path)
	m.progress = append(m.progress, append([]string{}, m.completed...))
}

func (m *recordingMonitor) FileFailed(failure core.FileFailure) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, failure)
}

func (m *recordingMonitor) RunFinished(record *core.IngestionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = record
}

func newTestRunner(t *testing.T, source fs.FS, specs []strategy.Spec, opts ...RunnerOption) (*Runner, *mock.Suite) {
	t.Helper()

	suite := mock.NewSuite()
	reg := component.NewRegistry()
	require.NoError(t, suite.Register(reg))
	reg.Seal()

	resolver, err := strategy.NewResolver(reg, specs)
	require.NoError(t, err)

	orchestrator, err := NewOrchestrator(source)
	require.NoError(t, err)

	runner, err := NewRunner(resolver, orchestrator, opts...)
	require.NoError(t, err)

	return runner, suite
}

func testFiles(paths ...string) []core.FileRef {
	refs := make([]core.FileRef, len(paths))
	for i, path := range paths {
		refs[i] = core.FileRef{Path: path}
	}
	return refs
}

func TestRunner_SingleFile(t *testing.T) {
	source := fstest.MapFS{
		"notes.txt": {Data: []byte("first paragraph\n\nsecond paragraph")},
	}
	runner, suite := newTestRunner(t, source, nil)

	record, err := runner.Run(context.Background(), "acme", "handbook", "notes", "", testFiles("notes.txt"))
	require.NoError(t, err)

	require.Len(t, record.Processed, 1)
	result := record.Processed[0]
	assert.Equal(t, "notes.txt", result.Path)
	assert.Equal(t, "universal", result.Strategy)
	assert.Equal(t, 2, result.Chunks)
	assert.Equal(t, 0, result.Dropped)
	assert.Empty(t, record.Failed)
	assert.False(t, record.Cancelled)
	assert.Equal(t, "universal", record.Strategy)
	assert.False(t, record.FinishedAt.Before(record.StartedAt))

	// Chunks landed in the store under the file identifier
	fileID := core.FileIdentifier("acme", "handbook", "notes", "notes.txt")
	stored := suite.Store.FileChunks(fileID)
	require.Len(t, stored, 2)
	assert.Equal(t, "first paragraph", stored[0].Text)
	assert.Equal(t, "second paragraph", stored[1].Text)
}

func TestRunner_ChunkIdentityAndMetadata(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("alpha\n\nbeta")},
	}
	runner, suite := newTestRunner(t, source, nil)

	suite.FileInfo.ExtractFunc = func(ctx context.Context, doc *core.Document) (map[string]string, error) {
		return map[string]string{"topic": "greek letters"}, nil
	}
	suite.ContentStats.ExtractFunc = func(ctx context.Context, doc *core.Document) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := runner.Run(context.Background(), "acme", "handbook", "docs", "", testFiles("doc.txt"))
	require.NoError(t, err)

	fileID := core.FileIdentifier("acme", "handbook", "docs", "doc.txt")
	stored := suite.Store.FileChunks(fileID)
	require.Len(t, stored, 2)

	for i, chunk := range stored {
		assert.Equal(t, i, chunk.Ordinal)
		assert.Equal(t, fileID, chunk.FileId)
		assert.Equal(t, core.ChunkIdentifier(fileID, i, chunk.Text), chunk.Id)
		assert.Equal(t, "doc.txt", chunk.Metadata["source"])
		assert.Equal(t, "greek letters", chunk.Metadata["topic"])
		assert.NotEmpty(t, chunk.Vector)
		assert.False(t, chunk.InsertedAt.IsZero())
	}
}

func TestRunner_FailureIsolation(t *testing.T) {
	source := fstest.MapFS{
		"a.txt": {Data: []byte("content a")},
		"b.txt": {Data: []byte("content b")},
		"c.txt": {Data: []byte("content c")},
	}
	monitor := &recordingMonitor{}
	runner, suite := newTestRunner(t, source, nil, WithMonitor(monitor))

	suite.Parser.ParseFunc = func(ctx context.Context, file core.FileRef, r io.Reader) (*core.Document, error) {
		if file.Path == "b.txt" {
			return nil, errors.New("corrupt input")
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return &core.Document{File: file, Content: string(data), Metadata: map[string]string{}}, nil
	}

	record, err := runner.Run(context.Background(), "acme", "handbook", "mixed", "", testFiles("a.txt", "b.txt", "c.txt"))
	require.NoError(t, err, "one failing file must not fail the run")

	// Declaration order, with the failure recorded in between
	assert.Equal(t, []string{"a.txt", "c.txt"}, record.ProcessedPaths())
	require.Len(t, record.Failed, 1)
	assert.Equal(t, "b.txt", record.Failed[0].Path)
	assert.Equal(t, StageParse, record.Failed[0].Stage)
	assert.Contains(t, record.Failed[0].Reason, "corrupt input")

	// Progress was incremental: first [a], then [a, c]
	require.Len(t, monitor.progress, 2)
	assert.Equal(t, []string{"a.txt"}, monitor.progress[0])
	assert.Equal(t, []string{"a.txt", "c.txt"}, monitor.progress[1])
	require.Len(t, monitor.failed, 1)
	assert.Equal(t, "b.txt", monitor.failed[0].Path)
}

func TestRunner_Idempotence(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("old first\n\nold second\n\nold third")},
	}
	runner, suite := newTestRunner(t, source, nil)
	ctx := context.Background()
	fileID := core.FileIdentifier("acme", "handbook", "docs", "doc.txt")

	_, err := runner.Run(ctx, "acme", "handbook", "docs", "", testFiles("doc.txt"))
	require.NoError(t, err)
	require.Len(t, suite.Store.FileChunks(fileID), 3)

	// Re-ingest with different content: stored chunks are fully replaced
	source["doc.txt"] = &fstest.MapFile{Data: []byte("new only paragraph")}

	record, err := runner.Run(ctx, "acme", "handbook", "docs", "", testFiles("doc.txt"))
	require.NoError(t, err)
	assert.Equal(t, 1, record.Processed[0].Chunks)

	stored := suite.Store.FileChunks(fileID)
	require.Len(t, stored, 1, "no stale chunks may survive re-ingestion")
	assert.Equal(t, "new only paragraph", stored[0].Text)
}

func TestRunner_EmptyFileClearsStaleChunks(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("stale paragraph")},
	}
	runner, suite := newTestRunner(t, source, nil)
	ctx := context.Background()
	fileID := core.FileIdentifier("acme", "handbook", "docs", "doc.txt")

	_, err := runner.Run(ctx, "acme", "handbook", "docs", "", testFiles("doc.txt"))
	require.NoError(t, err)
	require.Len(t, suite.Store.FileChunks(fileID), 1)

	// A now-empty file is a success with zero chunks, and clears the store
	source["doc.txt"] = &fstest.MapFile{Data: []byte("")}

	record, err := runner.Run(ctx, "acme", "handbook", "docs", "", testFiles("doc.txt"))
	require.NoError(t, err)
	assert.Equal(t, 0, record.Processed[0].Chunks)
	assert.Empty(t, suite.Store.FileChunks(fileID))
}

func TestRunner_MissingFileFailsAtParse(t *testing.T) {
	runner, _ := newTestRunner(t, fstest.MapFS{}, nil)

	record, err := runner.Run(context.Background(), "acme", "handbook", "docs", "", testFiles("absent.txt"))
	assert.ErrorIs(t, err, ErrAllFilesFailed)
	require.Len(t, record.Failed, 1)
	assert.Equal(t, StageParse, record.Failed[0].Stage)
}

func TestRunner_DroppedChunks(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("good one\n\nbad apple\n\ngood two")},
	}
	runner, suite := newTestRunner(t, source, nil)

	// Batch embedding fails, per-chunk fallback fails for one chunk
	suite.Embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("batch too large")
	}
	suite.Embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "bad apple" {
			return nil, errors.New("embedding rejected")
		}
		return []float32{0.6, 0.8}, nil
	}

	record, err := runner.Run(context.Background(), "acme", "handbook", "docs", "", testFiles("doc.txt"))
	require.NoError(t, err, "dropping a chunk must not fail the file")

	result := record.Processed[0]
	assert.Equal(t, 2, result.Chunks)
	assert.Equal(t, 1, result.Dropped)

	fileID := core.FileIdentifier("acme", "handbook", "docs", "doc.txt")
	stored := suite.Store.FileChunks(fileID)
	require.Len(t, stored, 2)
	assert.Equal(t, "good one", stored[0].Text)
	assert.Equal(t, "good two", stored[1].Text)

	// Ordinals keep their original positions, preserving chunk identity
	assert.Equal(t, 0, stored[0].Ordinal)
	assert.Equal(t, 2, stored[1].Ordinal)
}

func TestRunner_AllChunksDroppedFailsFile(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("paragraph one\n\nparagraph two")},
	}
	runner, suite := newTestRunner(t, source, nil)

	embedErr := errors.New("embedder down")
	suite.Embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, embedErr
	}
	suite.Embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, embedErr
	}

	record, err := runner.Run(context.Background(), "acme", "handbook", "docs", "", testFiles("doc.txt"))
	assert.ErrorIs(t, err, ErrAllFilesFailed)
	require.Len(t, record.Failed, 1)
	assert.Equal(t, StageEmbed, record.Failed[0].Stage)
	assert.Empty(t, record.Processed)
}

func TestRunner_StoreFailureIsFatal(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("some paragraph")},
	}
	runner, suite := newTestRunner(t, source, nil)

	suite.Store.ReplaceFunc = func(ctx context.Context, fileID core.ID, chunks []*core.Chunk) error {
		return errors.New("disk full")
	}

	record, err := runner.Run(context.Background(), "acme", "handbook", "docs", "", testFiles("doc.txt"))
	assert.ErrorIs(t, err, ErrAllFilesFailed)
	require.Len(t, record.Failed, 1)
	assert.Equal(t, StageStore, record.Failed[0].Stage)
	assert.Contains(t, record.Failed[0].Reason, "disk full")
}

func TestRunner_ExtractorErrorsLandInMetadata(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("a paragraph")},
	}
	runner, suite := newTestRunner(t, source, nil)

	suite.ContentStats.ExtractFunc = func(ctx context.Context, doc *core.Document) (map[string]string, error) {
		return nil, errors.New("stats offline")
	}

	record, err := runner.Run(context.Background(), "acme", "handbook", "docs", "", testFiles("doc.txt"))
	require.NoError(t, err, "extractor failures are not fatal")
	assert.Equal(t, 1, record.Processed[0].Chunks)

	fileID := core.FileIdentifier("acme", "handbook", "docs", "doc.txt")
	stored := suite.Store.FileChunks(fileID)
	require.Len(t, stored, 1)
	assert.Contains(t, stored[0].Metadata[ExtractorErrorsField], "content-stats: stats offline")
}

func TestRunner_InvalidDatasetStrategyFailsBeforeFiles(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("content")},
	}
	runner, suite := newTestRunner(t, source, nil)

	record, err := runner.Run(context.Background(), "acme", "handbook", "docs", "no-such-strategy", testFiles("doc.txt"))
	assert.ErrorIs(t, err, strategy.ErrStrategyNotFound)
	assert.Nil(t, record, "no file work may start on an invalid dataset strategy")
	assert.Equal(t, 0, suite.Parser.CallCount())
}

func TestRunner_FileLevelUnknownStrategyIsIsolated(t *testing.T) {
	source := fstest.MapFS{
		"a.txt": {Data: []byte("content a")},
		"b.txt": {Data: []byte("content b")},
	}
	runner, _ := newTestRunner(t, source, nil)

	files := []core.FileRef{
		{Path: "a.txt", Strategy: "no-such-strategy"},
		{Path: "b.txt"},
	}
	record, err := runner.Run(context.Background(), "acme", "handbook", "docs", "", files)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, record.ProcessedPaths())
	require.Len(t, record.Failed, 1)
	assert.Equal(t, StageResolve, record.Failed[0].Stage)
	assert.Contains(t, record.Failed[0].Reason, "no-such-strategy")
}

func TestRunner_Cancellation(t *testing.T) {
	source := fstest.MapFS{
		"a.txt": {Data: []byte("content a")},
		"b.txt": {Data: []byte("content b")},
		"c.txt": {Data: []byte("content c")},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner, suite := newTestRunner(t, source, nil)

	// Cancel the run while the first file is being embedded
	suite.Embedder.EmbedTextsFunc = func(embedCtx context.Context, texts []string) ([][]float32, error) {
		cancel()
		return [][]float32{{0.6, 0.8}}, nil
	}

	record, err := runner.Run(ctx, "acme", "handbook", "docs", "", testFiles("a.txt", "b.txt", "c.txt"))
	assert.ErrorIs(t, err, context.Canceled)

	require.NotNil(t, record, "cancellation must return the partial record")
	assert.True(t, record.Cancelled)
	assert.Equal(t, []string{"a.txt"}, record.ProcessedPaths())
	assert.Empty(t, record.Failed, "unprocessed files are not failures")
	assert.False(t, record.FinishedAt.IsZero())
}

func TestRunner_EmptyDataset(t *testing.T) {
	runner, _ := newTestRunner(t, fstest.MapFS{}, nil)

	record, err := runner.Run(context.Background(), "acme", "handbook", "empty", "", nil)
	require.NoError(t, err)
	assert.Empty(t, record.Processed)
	assert.Empty(t, record.Failed)
}

func TestOrchestrator_StageErrorWrapsSentinels(t *testing.T) {
	source := fstest.MapFS{
		"doc.txt": {Data: []byte("paragraph")},
	}
	suite := mock.NewSuite()
	reg := component.NewRegistry()
	require.NoError(t, suite.Register(reg))
	reg.Seal()

	resolver, err := strategy.NewResolver(reg, nil)
	require.NoError(t, err)
	orchestrator, err := NewOrchestrator(source)
	require.NoError(t, err)

	suite.Chunker.ChunkFunc = func(ctx context.Context, doc *core.Document) ([]core.Chunk, error) {
		return nil, errors.New("splitter crashed")
	}

	file := core.FileRef{Path: "doc.txt"}
	resolved, err := resolver.ResolveFile("", file)
	require.NoError(t, err)

	fileID := core.FileIdentifier("acme", "handbook", "docs", "doc.txt")
	_, err = orchestrator.IngestFile(context.Background(), fileID, resolved, file)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChunk)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageChunk, stageErr.Stage)
	assert.Equal(t, "doc.txt", stageErr.Path)
}

func TestNewOrchestrator_Validation(t *testing.T) {
	_, err := NewOrchestrator(nil)
	assert.ErrorIs(t, err, ErrSourceRequired)
}

func TestNewRunner_Validation(t *testing.T) {
	source := fstest.MapFS{}
	orchestrator, err := NewOrchestrator(source)
	require.NoError(t, err)

	_, err = NewRunner(nil, orchestrator)
	assert.ErrorIs(t, err, ErrResolverRequired)

	reg := component.NewRegistry()
	resolver, err := strategy.NewResolver(reg, nil)
	require.NoError(t, err)

	_, err = NewRunner(resolver, nil)
	assert.ErrorIs(t, err, ErrOrchestratorRequired)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StatePending, "pending"},
		{StateParsed, "parsed"},
		{StateExtracted, "extracted"},
		{StateChunked, "chunked"},
		{StateEmbedded, "embedded"},
		{StateStored, "stored"},
		{StateFailed, "failed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestWriterMonitor(t *testing.T) {
	var buf strings.Builder
	monitor := NewWriterMonitor(&buf)

	monitor.RunStarted("acme", "handbook", "docs", 2)
	monitor.FileCompleted(core.FileResult{Path: "a.txt", Chunks: 3, Strategy: "universal"})
	monitor.FileFailed(core.FileFailure{Path: "b.txt", Stage: "parse", Reason: "corrupt"})

	out := buf.String()
	assert.Contains(t, out, "Ingesting acme/handbook/docs (2 files)")
	assert.Contains(t, out, "a.txt: 3 chunks [universal]")
	assert.Contains(t, out, "b.txt: FAILED at parse: corrupt")
}
