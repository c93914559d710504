// Package extract reads the embedded text layer of PDF documents page by page.
package extract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadablePDF indicates the uploaded bytes could not be opened as a PDF.
var ErrUnreadablePDF = errors.New("unreadable pdf")

// Reader provides per-page access to a PDF's text layer.
type Reader struct {
	r *pdf.Reader
}

// NewReader opens content as a PDF. Returns ErrUnreadablePDF (wrapped) when
// the bytes are not a parseable PDF.
func NewReader(content []byte) (*Reader, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	return &Reader{r: r}, nil
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.r.NumPage()
}

// PageText returns the text layer of page pageNum (1-based). A page without
// a text layer yields an empty string, not an error; scanned pages typically
// land here and are handled by OCR upstream.
func (r *Reader) PageText(pageNum int) (string, error) {
	page := r.r.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract page %d: %w", pageNum, err)
	}
	return text, nil
}
