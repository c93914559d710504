package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embedding"
	"github.com/docsift/docsift/internal/index"
	"github.com/docsift/docsift/internal/models"
)

func newTestEngine(t *testing.T) (*Engine, *index.Index, embedding.Embedder) {
	t.Helper()
	ix := index.New()
	emb := embedding.NewMockEmbedder(128)
	cfg := &config.SearchConfig{DefaultTopK: 10, MaxTopK: 100}
	return NewEngine(ix, emb, cfg, nil), ix, emb
}

func insertDoc(t *testing.T, ix *index.Index, emb embedding.Embedder, safe string, texts ...string) {
	t.Helper()
	chunks := make([]models.Chunk, len(texts))
	for i, text := range texts {
		vec, err := emb.Embed(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		chunks[i] = models.Chunk{PageNum: 1, Text: text, Embedding: vec}
	}
	doc := &models.Document{
		Filename:     safe + ".pdf",
		SafeFilename: safe,
		PageCount:    1,
		UploadTime:   time.Now(),
	}
	if err := ix.Insert(doc, chunks); err != nil {
		t.Fatal(err)
	}
}

func TestSearchInvalidQuery(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	insertDoc(t, ix, emb, "a", "some content")
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := e.Search(context.Background(), models.SearchRequest{Query: q})
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("query %q: expected ErrInvalidQuery, got %v", q, err)
		}
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	e, _, _ := newTestEngine(t)
	_, err := e.Search(context.Background(), models.SearchRequest{Query: "anything"})
	if !errors.Is(err, ErrEmptySearch) {
		t.Errorf("expected ErrEmptySearch, got %v", err)
	}
}

func TestSearchRanksRelatedFirst(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	insertDoc(t, ix, emb, "evidence", "The suspect carried a firearm.")
	insertDoc(t, ix, emb, "finance", "Quarterly revenue grew nine percent.")
	insertDoc(t, ix, emb, "weather", "Light rain expected through Thursday.")

	resp, err := e.Search(context.Background(), models.SearchRequest{Query: "suspect firearm", TopK: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("results=%d", len(resp.Results))
	}
	top := resp.Results[0]
	if top.Filename != "evidence.pdf" {
		t.Errorf("top result filename=%q", top.Filename)
	}
	if top.PageNum != 1 {
		t.Errorf("top result page=%d", top.PageNum)
	}
	if top.SimilarityScore <= resp.Results[1].SimilarityScore {
		t.Error("top result should outscore the rest")
	}
	if resp.SearchedDocuments != 3 {
		t.Errorf("SearchedDocuments=%d", resp.SearchedDocuments)
	}
}

func TestSearchTopKLimit(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	insertDoc(t, ix, emb, "a", "alpha beta", "gamma delta", "epsilon zeta")
	resp, err := e.Search(context.Background(), models.SearchRequest{Query: "alpha", TopK: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("results=%d, want 2", len(resp.Results))
	}
}

func TestSearchTopKExceedsChunks(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	insertDoc(t, ix, emb, "a", "only one chunk")
	resp, err := e.Search(context.Background(), models.SearchRequest{Query: "chunk", TopK: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results=%d, want 1", len(resp.Results))
	}
}

func TestSearchTieBreakByChunkID(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	// Identical texts embed identically, forcing a similarity tie.
	insertDoc(t, ix, emb, "a", "identical passage", "identical passage")
	resp, err := e.Search(context.Background(), models.SearchRequest{Query: "identical passage", TopK: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results=%d", len(resp.Results))
	}
	if resp.Results[0].ChunkID >= resp.Results[1].ChunkID {
		t.Errorf("tie should break by ascending chunk id: %d then %d",
			resp.Results[0].ChunkID, resp.Results[1].ChunkID)
	}
}

func TestSearchScoreBounds(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	insertDoc(t, ix, emb, "a", "one passage", "another passage entirely", "third unrelated thing")
	resp, err := e.Search(context.Background(), models.SearchRequest{Query: "passage", TopK: 10})
	if err != nil {
		t.Fatal(err)
	}
	prev := 101.0
	for _, r := range resp.Results {
		if r.ScorePercentage < 0 || r.ScorePercentage > 100 {
			t.Errorf("score_percentage out of range: %f", r.ScorePercentage)
		}
		if r.ScorePercentage > prev {
			t.Error("score_percentage must be non-increasing down the ranking")
		}
		prev = r.ScorePercentage
	}
}

func TestSearchAfterDelete(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	insertDoc(t, ix, emb, "gone", "the vanishing document")
	insertDoc(t, ix, emb, "kept", "a document that stays")
	if err := ix.Delete("gone"); err != nil {
		t.Fatal(err)
	}
	resp, err := e.Search(context.Background(), models.SearchRequest{Query: "document", TopK: 10})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range resp.Results {
		if r.Filename == "gone.pdf" {
			t.Error("deleted document must not appear in results")
		}
	}
}

func TestSearchAfterClear(t *testing.T) {
	e, ix, emb := newTestEngine(t)
	insertDoc(t, ix, emb, "a", "content")
	ix.Clear()
	_, err := e.Search(context.Background(), models.SearchRequest{Query: "content"})
	if !errors.Is(err, ErrEmptySearch) {
		t.Errorf("expected ErrEmptySearch after clear, got %v", err)
	}
}

func TestScorePercentage(t *testing.T) {
	tests := []struct {
		sim  float64
		want float64
	}{
		{1.0, 100},
		{0.5, 50},
		{0.123, 12.3},
		{0.1234, 12.3},
		{0, 0},
		{-0.5, 0},
		{1.5, 100},
	}
	for _, tt := range tests {
		if got := scorePercentage(tt.sim); got != tt.want {
			t.Errorf("scorePercentage(%f)=%f, want %f", tt.sim, got, tt.want)
		}
	}
}
