package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/docsift/docsift/internal/config"
)

func newTestEngine(tesseract, pdftoppm string) *Engine {
	cfg := &config.OCRConfig{
		TesseractPath:      tesseract,
		PdftoppmPath:       pdftoppm,
		Language:           "eng",
		DPI:                300,
		PageTimeoutSeconds: 5,
	}
	return NewEngine(cfg, nil)
}

func TestAvailableMissingTesseract(t *testing.T) {
	e := newTestEngine("/nonexistent/tesseract-binary", "/nonexistent/pdftoppm")
	err := e.Available()
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error should wrap ErrUnavailable, got %v", err)
	}
}

func TestAvailableCached(t *testing.T) {
	e := newTestEngine("/nonexistent/tesseract-binary", "/nonexistent/pdftoppm")
	first := e.Available()
	second := e.Available()
	if first == nil || second == nil {
		t.Fatal("expected errors")
	}
	if first.Error() != second.Error() {
		t.Error("probe result should be cached")
	}
}

func TestRecognizePageUnavailable(t *testing.T) {
	e := newTestEngine("/nonexistent/tesseract-binary", "/nonexistent/pdftoppm")
	_, err := e.RecognizePage(context.Background(), "/tmp/whatever.pdf", 1)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
