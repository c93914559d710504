package ingest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embedding"
	"github.com/docsift/docsift/internal/fileid"
	"github.com/docsift/docsift/internal/index"
	"github.com/docsift/docsift/internal/models"
)

// ErrIngestionTimeout indicates the document-level deadline expired before
// the upload finished processing.
var ErrIngestionTimeout = errors.New("ingestion timed out")

// Manager drives the full upload pipeline: page processing, chunking,
// embedding, and the atomic index insert. All intermediate state is
// request-local; the index is only touched by the final Insert, so a failed
// upload leaves no trace.
type Manager struct {
	processor     *PageProcessor
	chunker       *Chunker
	embedder      embedding.Embedder
	index         *index.Index
	uploadTimeout time.Duration
	logger        *zap.Logger
}

// NewManager creates a document manager with the given pipeline stages.
func NewManager(
	processor *PageProcessor,
	chunker *Chunker,
	embedder embedding.Embedder,
	ix *index.Index,
	cfg *config.IngestConfig,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		processor:     processor,
		chunker:       chunker,
		embedder:      embedder,
		index:         ix,
		uploadTimeout: time.Duration(cfg.UploadTimeoutSeconds) * time.Second,
		logger:        logger,
	}
}

// Upload ingests one PDF and returns the committed document. The work is
// detached from the caller's cancellation: a client that disconnects
// mid-upload gets either a fully committed document or nothing, never a
// partial one. Our own document deadline still applies.
func (m *Manager) Upload(ctx context.Context, fileBytes []byte, filename string) (*models.Document, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.uploadTimeout)
	defer cancel()
	start := time.Now()

	safeFilename := fileid.SafeFilename(filename, start)

	pages, err := m.processor.Process(ctx, fileBytes)
	if err != nil {
		return nil, m.wrapTimeout(ctx, fmt.Errorf("process %s: %w", safeFilename, err))
	}

	var texts []string
	var pageNums []int
	pagesOCR, pagesLayer := 0, 0
	for _, page := range pages {
		switch page.Source {
		case SourceOCR:
			pagesOCR++
		case SourceTextLayer:
			pagesLayer++
		}
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		for _, piece := range m.chunker.Chunk(page.Text) {
			texts = append(texts, piece)
			pageNums = append(pageNums, page.PageNum)
		}
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, safeFilename)
	}

	embeddings, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, m.wrapTimeout(ctx, fmt.Errorf("embed chunks of %s: %w", safeFilename, err))
	}

	chunks := make([]models.Chunk, len(texts))
	for i := range texts {
		chunks[i] = models.Chunk{
			PageNum:   pageNums[i],
			Text:      texts[i],
			Embedding: embeddings[i],
		}
	}
	doc := &models.Document{
		Filename:       filename,
		SafeFilename:   safeFilename,
		PageCount:      len(pages),
		UploadTime:     start.UTC(),
		FileSizeMB:     math.Round(float64(len(fileBytes))/(1024*1024)*100) / 100,
		PagesTextLayer: pagesLayer,
		PagesOCR:       pagesOCR,
	}
	if err := m.index.Insert(doc, chunks); err != nil {
		return nil, err
	}

	if m.logger != nil {
		m.logger.Info("document ingested",
			zap.String("safe_filename", safeFilename),
			zap.Int("pages", doc.PageCount),
			zap.Int("pages_ocr", pagesOCR),
			zap.Int("chunks", doc.TotalChunks),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return doc, nil
}

// List returns all stored documents in upload order.
func (m *Manager) List() []models.Document {
	return m.index.List()
}

// Delete removes one document and its chunks by safe filename.
func (m *Manager) Delete(safeFilename string) error {
	err := m.index.Delete(safeFilename)
	if err == nil && m.logger != nil {
		m.logger.Info("document deleted", zap.String("safe_filename", safeFilename))
	}
	return err
}

// Clear removes every document and chunk.
func (m *Manager) Clear() {
	m.index.Clear()
	if m.logger != nil {
		m.logger.Info("index cleared")
	}
}

// Stats returns aggregate index statistics.
func (m *Manager) Stats() index.Stats {
	return m.index.Stats()
}

// wrapTimeout converts deadline expiry into ErrIngestionTimeout, leaving
// other errors untouched.
func (m *Manager) wrapTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrIngestionTimeout, err)
	}
	return err
}
