// Package ingest turns uploaded PDFs into embedded, indexed chunks. It
// composes the text-layer extractor with the OCR fallback per page, splits
// page text into overlapping passages, and commits whole documents
// atomically.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/docsift/docsift/internal/extract"
)

// ErrEmptyDocument indicates no page yielded any text through either the
// text layer or OCR. Such documents are never inserted into the index.
var ErrEmptyDocument = errors.New("document contains no extractable text")

// PageSource records which extraction path satisfied a page.
type PageSource string

const (
	SourceTextLayer PageSource = "text_layer"
	SourceOCR       PageSource = "ocr"
	SourceNone      PageSource = "none"
)

// PageReader provides per-page text access to an opened PDF.
type PageReader interface {
	PageCount() int
	PageText(pageNum int) (string, error)
}

// ReaderOpener opens PDF bytes for page access. The default opener wraps
// extract.NewReader; tests substitute fakes.
type ReaderOpener func(content []byte) (PageReader, error)

// Recognizer runs OCR for single pages of a PDF stored on disk.
type Recognizer interface {
	Available() error
	RecognizePage(ctx context.Context, pdfPath string, pageNum int) (string, error)
}

// PageResult is the outcome for one page: its extracted text, the source
// that produced it, and the absorbed error when both paths failed. Failures
// are values, not panics or unwinding: only the all-pages-empty case
// escalates to a document-level error.
type PageResult struct {
	PageNum int
	Text    string
	Source  PageSource
	Err     error
}

// Per-page extraction states. A page moves Unprocessed -> TextExtracted when
// its text layer suffices, or through OCRAttempted otherwise, ending
// Resolved or Failed.
type pageState int

const (
	pageUnprocessed pageState = iota
	pageTextExtracted
	pageOCRAttempted
	pageResolved
	pageFailed
)

type pageWork struct {
	state     pageState
	num       int
	layerText string
	ocrText   string
	err       error
}

// PageProcessor extracts text from every page of a PDF, falling back to OCR
// for pages whose text layer is missing or too short to be meaningful.
type PageProcessor struct {
	open       ReaderOpener
	ocr        Recognizer
	minTextLen int
	logger     *zap.Logger
}

// ProcessorOption configures a PageProcessor.
type ProcessorOption func(*PageProcessor)

// WithReaderOpener substitutes the PDF opener. Used by tests and available
// for alternative input formats.
func WithReaderOpener(open ReaderOpener) ProcessorOption {
	return func(p *PageProcessor) { p.open = open }
}

// NewPageProcessor creates a processor. ocr may be nil, in which case pages
// without a usable text layer contribute no text. minTextLen is the
// threshold below which a page's text layer is considered image-bearing.
func NewPageProcessor(ocr Recognizer, minTextLen int, logger *zap.Logger, opts ...ProcessorOption) *PageProcessor {
	p := &PageProcessor{
		open: func(content []byte) (PageReader, error) {
			return extract.NewReader(content)
		},
		ocr:        ocr,
		minTextLen: minTextLen,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process extracts text from every page of the PDF in content. It returns
// one PageResult per page, in page order. Returns extract.ErrUnreadablePDF
// when the bytes are not a PDF, ErrEmptyDocument when no page yields text,
// and the context error when the document deadline expires mid-OCR.
func (p *PageProcessor) Process(ctx context.Context, content []byte) ([]PageResult, error) {
	reader, err := p.open(content)
	if err != nil {
		return nil, err
	}
	pageCount := reader.PageCount()
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: zero pages", ErrEmptyDocument)
	}

	pages := make([]pageWork, pageCount)
	candidates := 0
	for i := range pages {
		pages[i].num = i + 1
		text, err := reader.PageText(i + 1)
		if err != nil {
			// Extraction failure is page-level: the page becomes an OCR
			// candidate instead of failing the document.
			pages[i].err = err
			candidates++
			continue
		}
		pages[i].layerText = strings.TrimSpace(text)
		if len(pages[i].layerText) >= p.minTextLen {
			pages[i].state = pageTextExtracted
		} else {
			candidates++
		}
	}

	if candidates > 0 {
		if err := p.runOCR(ctx, content, pages); err != nil {
			return nil, err
		}
	}

	results := make([]PageResult, pageCount)
	anyText := false
	for i := range pages {
		results[i] = resolvePage(&pages[i])
		if results[i].Text != "" {
			anyText = true
		}
		if p.logger != nil {
			p.logger.Debug("page processed",
				zap.Int("page", results[i].PageNum),
				zap.String("source", string(results[i].Source)),
				zap.Int("chars", len(results[i].Text)),
			)
		}
	}
	if !anyText {
		return nil, ErrEmptyDocument
	}
	return results, nil
}

// runOCR attempts OCR on every candidate page (state pageUnprocessed). OCR
// unavailability and per-page failures are absorbed into the page's error;
// only context expiry aborts the document.
func (p *PageProcessor) runOCR(ctx context.Context, content []byte, pages []pageWork) error {
	var availErr error
	if p.ocr == nil {
		availErr = errors.New("no ocr engine configured")
	} else {
		availErr = p.ocr.Available()
	}
	if availErr != nil {
		if p.logger != nil {
			p.logger.Warn("ocr unavailable, image pages will be skipped", zap.Error(availErr))
		}
		for i := range pages {
			if pages[i].state == pageUnprocessed {
				pages[i].state = pageFailed
				pages[i].err = availErr
			}
		}
		return nil
	}

	// The OCR engine reads from disk, so spill the upload once for all pages.
	tmp, err := os.CreateTemp("", "docsift-upload-*.pdf")
	if err != nil {
		return fmt.Errorf("spill upload for ocr: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("spill upload for ocr: %w", err)
	}
	tmp.Close()

	for i := range pages {
		if pages[i].state != pageUnprocessed {
			continue
		}
		pages[i].state = pageOCRAttempted
		text, err := p.ocr.RecognizePage(ctx, tmp.Name(), pages[i].num)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			pages[i].err = err
			if p.logger != nil {
				p.logger.Warn("ocr page failed", zap.Int("page", pages[i].num), zap.Error(err))
			}
			continue
		}
		pages[i].ocrText = strings.TrimSpace(text)
	}
	return nil
}

// resolvePage finishes a page's state machine and produces its result. A
// page that attempted OCR falls back to whatever the text layer held when
// OCR produced nothing.
func resolvePage(w *pageWork) PageResult {
	res := PageResult{PageNum: w.num, Err: w.err}
	switch {
	case w.state == pageTextExtracted:
		w.state = pageResolved
		res.Text = w.layerText
		res.Source = SourceTextLayer
	case w.state == pageOCRAttempted && w.ocrText != "":
		w.state = pageResolved
		res.Text = w.ocrText
		res.Source = SourceOCR
	case w.layerText != "":
		// OCR failed or returned nothing; a short text layer beats none.
		w.state = pageResolved
		res.Text = w.layerText
		res.Source = SourceTextLayer
	default:
		w.state = pageFailed
		res.Source = SourceNone
	}
	return res
}
