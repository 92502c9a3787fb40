package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librit/core"
)

const sampleYAML = `
namespace: acme
project: handbook
rag:
  strategies:
    - name: legacy_pdf
      parser: pdf
      extractors: [file-info, keywords]
      chunker: token
      embedder: openai
      store: badger
datasets:
  - name: onboarding
    rag_strategy: legacy_pdf
    files:
      - scans/welcome.pdf
      - path: guides/setup.md
        rag_strategy: legacy_pdf
  - name: notes
    files:
      - daily/standup.txt
`

func TestParse(t *testing.T) {
	project, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "acme", project.Namespace)
	assert.Equal(t, "handbook", project.Name)

	require.Len(t, project.RAG.Strategies, 1)
	s := project.RAG.Strategies[0]
	assert.Equal(t, "legacy_pdf", s.Name)
	assert.Equal(t, "pdf", s.Parser)
	assert.Equal(t, []string{"file-info", "keywords"}, s.Extractors)
	assert.Equal(t, "token", s.Chunker)

	require.Len(t, project.Datasets, 2)
	assert.Equal(t, "onboarding", project.Datasets[0].Name)
	assert.Equal(t, "legacy_pdf", project.Datasets[0].RAGStrategy)
	assert.Equal(t, "", project.Datasets[1].RAGStrategy)
}

func TestParse_FileForms(t *testing.T) {
	project, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	files := project.Datasets[0].Files
	require.Len(t, files, 2)

	// Bare scalar form
	assert.Equal(t, "scans/welcome.pdf", files[0].Path)
	assert.Equal(t, "", files[0].Strategy)

	// Mapping form with override
	assert.Equal(t, "guides/setup.md", files[1].Path)
	assert.Equal(t, "legacy_pdf", files[1].Strategy)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("::not yaml::"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse project config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Project)
		wantErr error
	}{
		{
			name:    "missing namespace",
			mutate:  func(p *Project) { p.Namespace = "" },
			wantErr: ErrMissingNamespace,
		},
		{
			name:    "missing project name",
			mutate:  func(p *Project) { p.Name = "" },
			wantErr: ErrMissingProjectName,
		},
		{
			name:    "unnamed strategy",
			mutate:  func(p *Project) { p.RAG.Strategies[0].Name = "" },
			wantErr: ErrMissingStrategyName,
		},
		{
			name:    "strategy without chunker",
			mutate:  func(p *Project) { p.RAG.Strategies[0].Chunker = "" },
			wantErr: ErrIncompleteStrategy,
		},
		{
			name:    "unnamed dataset",
			mutate:  func(p *Project) { p.Datasets[0].Name = "" },
			wantErr: ErrMissingDatasetName,
		},
		{
			name:    "duplicate dataset",
			mutate:  func(p *Project) { p.Datasets[1].Name = p.Datasets[0].Name },
			wantErr: ErrDuplicateDataset,
		},
		{
			name:    "file without path",
			mutate:  func(p *Project) { p.Datasets[0].Files[0].Path = "" },
			wantErr: ErrMissingFilePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := Parse([]byte(sampleYAML))
			require.NoError(t, err)
			tt.mutate(project)
			assert.ErrorIs(t, project.Validate(), tt.wantErr)
		})
	}
}

func TestProject_Dataset(t *testing.T) {
	project, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	dataset, err := project.Dataset("notes")
	require.NoError(t, err)
	assert.Equal(t, "notes", dataset.Name)

	_, err = project.Dataset("missing")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestProject_StrategySpecs(t *testing.T) {
	project, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	specs := project.StrategySpecs()
	require.Len(t, specs, 1)
	assert.Equal(t, "legacy_pdf", specs[0].Name)
	assert.Equal(t, []string{"file-info", "keywords"}, specs[0].Extractors)
	assert.Equal(t, "badger", specs[0].Store)
}

func TestDataset_FileRefs(t *testing.T) {
	project, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	refs := project.Datasets[0].FileRefs()
	assert.Equal(t, []core.FileRef{
		{Path: "scans/welcome.pdf"},
		{Path: "guides/setup.md", Strategy: "legacy_pdf"},
	}, refs)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	project, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "acme", project.Namespace)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}
