// Package search ranks indexed chunks against a query by cosine similarity.
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embedding"
	"github.com/docsift/docsift/internal/index"
	"github.com/docsift/docsift/internal/models"
	"github.com/docsift/docsift/pkg/utils"
)

var (
	// ErrInvalidQuery indicates an empty or whitespace-only query.
	ErrInvalidQuery = errors.New("query is empty")
	// ErrEmptySearch indicates a search against an index with zero chunks.
	ErrEmptySearch = errors.New("no documents indexed")
)

// Engine answers queries with a brute-force linear scan over a consistent
// index snapshot. Correctness and simplicity over scale: no approximate
// structure is maintained, so results are exact for the current index state.
type Engine struct {
	index    *index.Index
	embedder embedding.Embedder
	cfg      *config.SearchConfig
	logger   *zap.Logger
}

// NewEngine creates a search engine over the given index and embedder.
func NewEngine(ix *index.Index, embedder embedding.Embedder, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	return &Engine{index: ix, embedder: embedder, cfg: cfg, logger: logger}
}

// Search embeds the query, scores every indexed chunk, and returns the top
// results. Ties in similarity break by ascending chunk id so rankings are
// deterministic.
func (e *Engine) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	start := time.Now()
	req.Normalize(e.cfg.DefaultTopK, e.cfg.MaxTopK)
	if req.Query == "" {
		return nil, ErrInvalidQuery
	}

	snap := e.index.Snapshot()
	if len(snap.Chunks) == 0 {
		return nil, ErrEmptySearch
	}

	queryVec, err := e.embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		chunk models.Chunk
		score float64
	}
	scores := make([]scored, len(snap.Chunks))
	for i, ch := range snap.Chunks {
		scores[i] = scored{chunk: ch, score: utils.Cosine(queryVec, ch.Embedding)}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].chunk.ChunkID < scores[j].chunk.ChunkID
	})

	k := req.TopK
	if k > len(scores) {
		k = len(scores)
	}
	results := make([]models.SearchResult, 0, k)
	for _, s := range scores[:k] {
		results = append(results, models.SearchResult{
			ChunkID:         s.chunk.ChunkID,
			PageNum:         s.chunk.PageNum,
			Text:            s.chunk.Text,
			SimilarityScore: s.score,
			ScorePercentage: scorePercentage(s.score),
			Filename:        snap.Filenames[s.chunk.SafeFilename],
		})
	}

	if e.logger != nil {
		e.logger.Debug("search done",
			zap.String("query", utils.Truncate(req.Query, 80)),
			zap.Int("scanned_chunks", len(snap.Chunks)),
			zap.Int("results", len(results)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return &models.SearchResponse{
		Results:           results,
		Query:             req.Query,
		TotalResults:      len(results),
		SearchedDocuments: len(snap.Filenames),
	}, nil
}

// scorePercentage rescales a raw cosine similarity to 0..100 with one
// decimal. The mapping is 100x with clamping: negative similarities (rare
// for this embedding family) floor at 0.
func scorePercentage(similarity float64) float64 {
	p := similarity * 100
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return math.Round(p*10) / 10
}
