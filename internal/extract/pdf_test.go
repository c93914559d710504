package extract

import (
	"errors"
	"testing"
)

func TestNewReaderNotAPDF(t *testing.T) {
	_, err := NewReader([]byte("this is not a pdf"))
	if err == nil {
		t.Fatal("expected error for non-PDF bytes")
	}
	if !errors.Is(err, ErrUnreadablePDF) {
		t.Errorf("error should wrap ErrUnreadablePDF, got %v", err)
	}
}

func TestNewReaderEmpty(t *testing.T) {
	_, err := NewReader(nil)
	if !errors.Is(err, ErrUnreadablePDF) {
		t.Errorf("expected ErrUnreadablePDF, got %v", err)
	}
}

func TestNewReaderTruncatedHeader(t *testing.T) {
	// A bare PDF header with no xref table is not a readable document.
	_, err := NewReader([]byte("%PDF-1.4\n"))
	if !errors.Is(err, ErrUnreadablePDF) {
		t.Errorf("expected ErrUnreadablePDF, got %v", err)
	}
}
