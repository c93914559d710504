// Package ocr recovers text from scanned PDF pages using an external OCR
// engine. Pages are rasterized with pdftoppm (poppler) and fed to tesseract;
// both binaries are located at startup and their paths are configurable.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/docsift/docsift/internal/config"
)

// ErrUnavailable indicates the OCR engine or the page rasterizer could not be
// located or started.
var ErrUnavailable = errors.New("ocr engine unavailable")

// Engine runs OCR on single PDF pages. It is safe for concurrent use; each
// call spawns its own subprocesses in a private temp directory.
type Engine struct {
	tesseractPath string
	pdftoppmPath  string
	language      string
	dpi           int
	pageTimeout   time.Duration
	logger        *zap.Logger

	availOnce sync.Once
	availErr  error
}

// NewEngine creates an OCR engine from config. Availability is probed lazily
// on first use and cached.
func NewEngine(cfg *config.OCRConfig, logger *zap.Logger) *Engine {
	return &Engine{
		tesseractPath: cfg.TesseractPath,
		pdftoppmPath:  cfg.PdftoppmPath,
		language:      cfg.Language,
		dpi:           cfg.DPI,
		pageTimeout:   time.Duration(cfg.PageTimeoutSeconds) * time.Second,
		logger:        logger,
	}
}

// Available reports whether both tesseract and pdftoppm can be invoked.
// The probe runs once; the result is cached for the process lifetime.
func (e *Engine) Available() error {
	e.availOnce.Do(func() {
		if _, err := exec.LookPath(e.tesseractPath); err != nil {
			e.availErr = fmt.Errorf("%w: tesseract not found at %q: %v", ErrUnavailable, e.tesseractPath, err)
			return
		}
		if _, err := exec.LookPath(e.pdftoppmPath); err != nil {
			e.availErr = fmt.Errorf("%w: pdftoppm not found at %q: %v", ErrUnavailable, e.pdftoppmPath, err)
			return
		}
		if err := exec.Command(e.tesseractPath, "--version").Run(); err != nil {
			e.availErr = fmt.Errorf("%w: tesseract does not start: %v", ErrUnavailable, err)
		}
	})
	return e.availErr
}

// RecognizePage rasterizes page pageNum (1-based) of the PDF at pdfPath and
// returns the recognized text, trimmed. The whole page is bounded by the
// configured page timeout so one stuck page cannot hang an upload.
func (e *Engine) RecognizePage(ctx context.Context, pdfPath string, pageNum int) (string, error) {
	if err := e.Available(); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, e.pageTimeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "docsift-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create ocr temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imagePath, err := e.rasterizePage(ctx, pdfPath, pageNum, tmpDir)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, e.tesseractPath, imagePath, "stdout", "-l", e.language, "--psm", "3")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract page %d: %w", pageNum, err)
	}
	text := strings.TrimSpace(out.String())
	if e.logger != nil {
		e.logger.Debug("ocr page done", zap.Int("page", pageNum), zap.Int("chars", len(text)))
	}
	return text, nil
}

// rasterizePage converts a single PDF page to PNG and returns the image path.
func (e *Engine) rasterizePage(ctx context.Context, pdfPath string, pageNum int, tmpDir string) (string, error) {
	prefix := filepath.Join(tmpDir, "page")
	page := strconv.Itoa(pageNum)
	cmd := exec.CommandContext(ctx, e.pdftoppmPath,
		"-png", "-r", strconv.Itoa(e.dpi), "-f", page, "-l", page, pdfPath, prefix)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("rasterize page %d: %w", pageNum, err)
	}
	images, err := filepath.Glob(prefix + "*")
	if err != nil || len(images) == 0 {
		return "", fmt.Errorf("no image produced for page %d", pageNum)
	}
	return images[0], nil
}
