// Package e2e drives the public HTTP API end to end against an in-process
// server backed by the mock embedder and a plain-text page reader.
package e2e

import (
	"bytes"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embedding"
	"github.com/docsift/docsift/internal/index"
	"github.com/docsift/docsift/internal/ingest"
	"github.com/docsift/docsift/internal/search"
	"github.com/docsift/docsift/internal/server"
)

// fixtureDoc is one corpus document: a filename and its pages.
type fixtureDoc struct {
	Filename string
	Pages    []string
}

// corpus returns themed documents with disjoint vocabularies so the mock
// embedder ranks the on-topic document first for each theme's query.
func corpus() []fixtureDoc {
	return []fixtureDoc{
		{
			Filename: "maritime.pdf",
			Pages: []string{
				"The cargo vessel departed the harbor carrying containers bound for the northern port.",
				"Customs inspected the manifest before the freighter was cleared to unload at the dock.",
			},
		},
		{
			Filename: "astronomy.pdf",
			Pages: []string{
				"The telescope captured the nebula glowing faintly beyond the spiral galaxy.",
				"Astronomers tracked the comet as it swung around the sun toward deep space.",
			},
		},
		{
			Filename: "gardening.pdf",
			Pages: []string{
				"Water the tomato seedlings daily and keep the greenhouse ventilated in summer.",
				"Prune the rose bushes after flowering and mulch the beds before winter frost.",
			},
		},
	}
}

// pdfBytes encodes pages as plain text separated by blank lines, matching
// what textOpener splits on.
func (d fixtureDoc) pdfBytes() []byte {
	return []byte(strings.Join(d.Pages, "\n\n"))
}

// multipartBody builds a multipart form with the document under field "file".
func (d fixtureDoc) multipartBody() (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", d.Filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(d.pdfBytes()); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &body, mw.FormDataContentType(), nil
}

type textReader struct {
	pages []string
}

func (r *textReader) PageCount() int { return len(r.pages) }

func (r *textReader) PageText(pageNum int) (string, error) {
	return r.pages[pageNum-1], nil
}

func textOpener(content []byte) (ingest.PageReader, error) {
	return &textReader{pages: strings.Split(string(content), "\n\n")}, nil
}

// newServer wires the full stack the way cmd/docsift does, with the PDF
// opener and embedder swapped for deterministic test doubles.
func newServer() *server.Server {
	logger := zap.NewNop()
	embedder := embedding.NewMockEmbedder(64)
	ix := index.New()
	proc := ingest.NewPageProcessor(nil, 16, logger, ingest.WithReaderOpener(textOpener))
	ingestCfg := &config.IngestConfig{ChunkSize: 200, ChunkOverlap: 40, UploadTimeoutSeconds: 60}
	manager := ingest.NewManager(proc, ingest.NewChunker(ingestCfg.ChunkSize, ingestCfg.ChunkOverlap),
		embedder, ix, ingestCfg, logger)
	engine := search.NewEngine(ix, embedder, &config.SearchConfig{DefaultTopK: 10, MaxTopK: 100}, logger)
	return server.NewServer(manager, engine,
		&config.ServerConfig{Host: "127.0.0.1", Port: 0, MaxUploadMB: 10}, logger)
}
