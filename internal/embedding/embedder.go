// Package embedding maps text passages to fixed-length vectors using a
// sentence-embedding model served through ONNX Runtime.
package embedding

import (
	"context"
	"errors"
	"strings"
)

// ErrEmbedding indicates the input could not be embedded (blank text, or the
// model rejected it). Ingestion filters empty chunks before this point, so in
// practice only malformed queries reach it.
var ErrEmbedding = errors.New("embedding failed")

// Embedder produces vector embeddings for text. Implementations must return
// L2-normalized vectors so cosine similarity reduces to a dot product.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// validateInput rejects blank text before it reaches the model.
func validateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmbedding
	}
	return nil
}
