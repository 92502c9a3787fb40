package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestFileIdentifier(t *testing.T) {
	id1 := FileIdentifier("acme", "support", "manuals", "docs/a.pdf")
	id2 := FileIdentifier("acme", "support", "manuals", "docs/a.pdf")
	if id1 != id2 {
		t.Errorf("FileIdentifier() not deterministic: %d vs %d", id1, id2)
	}

	other := FileIdentifier("acme", "support", "faq", "docs/a.pdf")
	if id1 == other {
		t.Errorf("FileIdentifier() collided across datasets for the same path")
	}
}

func TestChunkIdentifier(t *testing.T) {
	fileID := FileIdentifier("acme", "support", "manuals", "a.txt")

	id1 := ChunkIdentifier(fileID, 0, "some text")
	id2 := ChunkIdentifier(fileID, 0, "some text")
	if id1 != id2 {
		t.Errorf("ChunkIdentifier() not deterministic: %d vs %d", id1, id2)
	}

	if ChunkIdentifier(fileID, 1, "some text") == id1 {
		t.Errorf("ChunkIdentifier() ignored ordinal")
	}
	if ChunkIdentifier(fileID, 0, "other text") == id1 {
		t.Errorf("ChunkIdentifier() ignored text")
	}
}

func TestIngestionRecord_Message(t *testing.T) {
	tests := []struct {
		name   string
		record IngestionRecord
		want   string
	}{
		{
			name: "all succeeded",
			record: IngestionRecord{
				Namespace: "acme",
				Project:   "support",
				Dataset:   "manuals",
				Strategy:  "universal",
				Processed: []FileResult{{Path: "a.txt"}, {Path: "b.txt"}},
			},
			want: `ingested 2 of 2 files for acme/support/manuals using strategy "universal"`,
		},
		{
			name: "one failed",
			record: IngestionRecord{
				Namespace: "acme",
				Project:   "support",
				Dataset:   "manuals",
				Strategy:  "legacy_pdf",
				Processed: []FileResult{{Path: "a.txt"}},
				Failed:    []FileFailure{{Path: "b.txt", Stage: "parse", Reason: "boom"}},
			},
			want: `ingested 1 of 2 files for acme/support/manuals using strategy "legacy_pdf" (1 failed)`,
		},
		{
			name: "cancelled",
			record: IngestionRecord{
				Namespace: "acme",
				Project:   "support",
				Dataset:   "manuals",
				Strategy:  "universal",
				Cancelled: true,
			},
			want: `ingested 0 of 0 files for acme/support/manuals using strategy "universal" (cancelled)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.Message()
			if got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIngestionRecord_ProcessedPaths(t *testing.T) {
	record := IngestionRecord{
		Processed: []FileResult{{Path: "one.txt"}, {Path: "three.txt"}},
	}

	paths := record.ProcessedPaths()
	if len(paths) != 2 {
		t.Fatalf("ProcessedPaths() returned %d paths, want 2", len(paths))
	}
	if paths[0] != "one.txt" || paths[1] != "three.txt" {
		t.Errorf("ProcessedPaths() = %v, want [one.txt three.txt]", paths)
	}
}
