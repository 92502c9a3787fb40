package storage

import (
	"testing"
	"time"

	"github.com/poiesic/librit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		chunk *core.Chunk
	}{
		{
			name: "minimal chunk",
			chunk: &core.Chunk{
				Id:         core.ID(1),
				FileId:     core.ID(10),
				Ordinal:    0,
				Text:       "First paragraph.",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "chunk with vector",
			chunk: &core.Chunk{
				Id:         core.ID(2),
				FileId:     core.ID(10),
				Ordinal:    1,
				Text:       "Second paragraph with embedding.",
				Vector:     []float32{0.1, 0.2, 0.3, 0.4, 0.5},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "chunk with metadata",
			chunk: &core.Chunk{
				Id:      core.ID(3),
				FileId:  core.ID(10),
				Ordinal: 2,
				Text:    "Third paragraph.",
				Metadata: map[string]string{
					"source": "docs/guide.md",
					"topic":  "configuration",
				},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "chunk with everything",
			chunk: &core.Chunk{
				Id:      core.ChunkIdentifier(core.ID(10), 3, "Fourth paragraph."),
				FileId:  core.ID(10),
				Ordinal: 3,
				Text:    "Fourth paragraph.",
				Vector:  []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8},
				Metadata: map[string]string{
					"source":   "docs/guide.md",
					"keywords": "storage, serialization",
					"words":    "2",
				},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "empty text",
			chunk: &core.Chunk{
				Id:         core.ID(5),
				FileId:     core.ID(11),
				Ordinal:    0,
				Text:       "",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode text",
			chunk: &core.Chunk{
				Id:         core.ID(6),
				FileId:     core.ID(11),
				Ordinal:    1,
				Text:       "Hello 世界 🌍 émojis",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "long vector",
			chunk: &core.Chunk{
				Id:         core.ID(7),
				FileId:     core.ID(12),
				Ordinal:    0,
				Text:       "Embedding-heavy chunk",
				Vector:     make([]float32, 1536), // typical OpenAI embedding size
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalChunk(tt.chunk)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalChunk(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			// Verify fields
			assert.Equal(t, tt.chunk.Id, decoded.Id)
			assert.Equal(t, tt.chunk.FileId, decoded.FileId)
			assert.Equal(t, tt.chunk.Ordinal, decoded.Ordinal)
			assert.Equal(t, tt.chunk.Text, decoded.Text)
			assert.True(t, tt.chunk.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.chunk.UpdatedAt.Equal(decoded.UpdatedAt))
			// Handle nil vs empty slice/map
			if len(tt.chunk.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.chunk.Vector, decoded.Vector)
			}
			if len(tt.chunk.Metadata) == 0 {
				assert.Empty(t, decoded.Metadata)
			} else {
				assert.Equal(t, tt.chunk.Metadata, decoded.Metadata)
			}
		})
	}
}

func TestUnmarshalChunk_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalChunk(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}

func TestMarshalUnmarshalIngestionRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.IngestionRecord
	}{
		{
			name: "minimal record",
			record: &core.IngestionRecord{
				Id:         core.ID(1),
				Namespace:  "acme",
				Project:    "docs",
				Dataset:    "manuals",
				Strategy:   "universal",
				StartedAt:  now,
				FinishedAt: now,
			},
		},
		{
			name: "record with results",
			record: &core.IngestionRecord{
				Id:        core.ID(2),
				Namespace: "acme",
				Project:   "docs",
				Dataset:   "manuals",
				Strategy:  "legacy_pdf",
				Processed: []core.FileResult{
					{Path: "a.pdf", Id: core.ID(100), Strategy: "legacy_pdf", Chunks: 12, Dropped: 1},
					{Path: "c.txt", Id: core.ID(102), Strategy: "legacy_pdf", Chunks: 4},
				},
				Failed: []core.FileFailure{
					{Path: "b.pdf", Stage: "parse", Reason: "truncated file"},
				},
				StartedAt:  now.Add(-time.Minute),
				FinishedAt: now,
			},
		},
		{
			name: "cancelled record",
			record: &core.IngestionRecord{
				Id:        core.ID(3),
				Namespace: "acme",
				Project:   "docs",
				Dataset:   "manuals",
				Strategy:  "universal",
				Processed: []core.FileResult{
					{Path: "a.txt", Id: core.ID(100), Strategy: "universal", Chunks: 2},
				},
				StartedAt:  now.Add(-time.Second),
				FinishedAt: now,
				Cancelled:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalIngestionRecord(tt.record)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalIngestionRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			// Verify fields
			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.Namespace, decoded.Namespace)
			assert.Equal(t, tt.record.Project, decoded.Project)
			assert.Equal(t, tt.record.Dataset, decoded.Dataset)
			assert.Equal(t, tt.record.Strategy, decoded.Strategy)
			assert.Equal(t, tt.record.Cancelled, decoded.Cancelled)
			assert.True(t, tt.record.StartedAt.Equal(decoded.StartedAt))
			assert.True(t, tt.record.FinishedAt.Equal(decoded.FinishedAt))
			if len(tt.record.Processed) == 0 {
				assert.Empty(t, decoded.Processed)
			} else {
				assert.Equal(t, tt.record.Processed, decoded.Processed)
			}
			if len(tt.record.Failed) == 0 {
				assert.Empty(t, decoded.Failed)
			} else {
				assert.Equal(t, tt.record.Failed, decoded.Failed)
			}
		})
	}
}

func TestUnmarshalIngestionRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalIngestionRecord(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}

func TestRoundTripConsistency(t *testing.T) {
	t.Run("multiple marshal-unmarshal cycles", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		original := &core.Chunk{
			Id:      core.ID(999),
			FileId:  core.ID(42),
			Ordinal: 7,
			Text:    "Testing consistency",
			Vector:  []float32{0.1, 0.2, 0.3},
			Metadata: map[string]string{
				"source": "notes/a.md",
			},
			InsertedAt: now,
			UpdatedAt:  now,
		}

		// Perform 3 marshal-unmarshal cycles
		current := original
		for i := 0; i < 3; i++ {
			data := MarshalChunk(current)
			decoded, err := UnmarshalChunk(data)
			require.NoError(t, err)
			current = decoded
		}

		// Verify final result matches original
		assert.Equal(t, original.Id, current.Id)
		assert.Equal(t, original.FileId, current.FileId)
		assert.Equal(t, original.Ordinal, current.Ordinal)
		assert.Equal(t, original.Text, current.Text)
		assert.Equal(t, original.Vector, current.Vector)
		assert.Equal(t, original.Metadata, current.Metadata)
	})
}
