package embedding

import (
	"context"
	"strings"
	"unicode"

	"github.com/docsift/docsift/pkg/utils"
)

// MockEmbedder is a deterministic embedder for tests and development. It
// hashes each word into a fixed-dimension feature vector, so texts sharing
// vocabulary get high cosine similarity and unrelated texts do not. The same
// text always yields the same embedding.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns an embedder producing deterministic embeddings of
// the given dimension.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed returns a normalized bag-of-words feature-hash embedding.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := validateInput(text); err != nil {
		return nil, err
	}
	emb := make([]float32, e.dimensions)
	for _, w := range splitLowerWords(text) {
		h := hashString(w)
		emb[h%e.dimensions] += 1
		emb[(h/7)%e.dimensions] += 0.5
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each text.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}

// splitLowerWords lowercases text and splits on anything that is not a letter
// or digit, so punctuation does not change a word's feature.
func splitLowerWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
