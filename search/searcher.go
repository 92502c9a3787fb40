package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/librit/component"
	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/storage"
)

const (
	// minSimilarity filters out weak matches before scoring.
	minSimilarity = 0.60

	// verbatimBoost is added to the score of chunks that contain
	// every significant query word.
	verbatimBoost = 0.3

	// filterCandidateFactor widens the candidate pool when a metadata
	// filter will discard part of the similarity result set.
	filterCandidateFactor = 4
)

// Searcher provides semantic search over stored chunks.
type Searcher struct {
	chunks   storage.ChunkRepository
	embedder component.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(chunks storage.ChunkRepository, embedder component.Embedder, opts ...Option) (*Searcher, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		chunks:   chunks,
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches for chunks similar to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, query, nil, maxHits, nil)
}

// FindWithMetadata searches for chunks similar to the query whose metadata
// contains every key/value pair in filter.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindWithMetadata(ctx context.Context, query string, filter map[string]string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, query, filter, maxHits, nil)
}

// FindSimilarWithMonitor searches for chunks similar to the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, filter map[string]string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// 1. Embed the query
	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	embedding = core.NormalizeVector(embedding)

	// A metadata filter drops candidates after the similarity search,
	// so fetch more than maxHits to compensate.
	candidates := maxHits
	if len(filter) > 0 {
		candidates = maxHits * filterCandidateFactor
	}

	matches, err := s.chunks.FindSimilar(ctx, embedding, minSimilarity, candidates)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}

	semanticIds := make([]uint64, 0, len(matches))
	for _, match := range matches {
		semanticIds = append(semanticIds, uint64(match.Chunk.Id))
	}
	monitor.AfterSemanticSearch(semanticIds)

	// 2. Apply the metadata filter
	if len(filter) > 0 {
		kept := matches[:0]
		keptIds := make([]uint64, 0, len(matches))
		for _, match := range matches {
			if matchesMetadata(match.Chunk.Metadata, filter) {
				kept = append(kept, match)
				keptIds = append(keptIds, uint64(match.Chunk.Id))
			}
		}
		matches = kept
		monitor.AfterMetadataFilter(keptIds)
	}

	// 3. Score results, boosting chunks that contain the query verbatim
	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		score := match.Score
		if containsAllQueryWords(match.Chunk.Text, query) {
			score += verbatimBoost
			monitor.VerbatimHit(match.Chunk)
		} else {
			monitor.SemanticHit(match.Chunk)
		}

		results = append(results, &core.SearchResult{
			Chunk: match.Chunk,
			Score: score,
		})
	}

	// Sort by score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}

// matchesMetadata reports whether metadata contains every filter pair.
func matchesMetadata(metadata, filter map[string]string) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}
