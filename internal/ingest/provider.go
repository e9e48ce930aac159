package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pdfsim/internal/compare"
	"pdfsim/internal/logging"
)

// ErrPageExtraction covers every way a document or one of its pages can
// fail to produce text: missing file, unsupported type, corrupt content,
// page out of range.
var ErrPageExtraction = errors.New("page extraction failed")

// Provider opens local documents and serves their text page by page.
// PDFs keep their own pagination, DOCX files are a single page and plain
// text files are paginated on form feeds.
type Provider struct {
	logger *slog.Logger
}

func NewProvider(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Provider{logger: logger.With("component", "ingest")}
}

func (p *Provider) Open(ctx context.Context, path string) (compare.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrPageExtraction, path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		doc compare.Document
		err error
	)
	switch ext {
	case ".pdf":
		doc, err = openPDF(path)
	case ".docx":
		doc, err = openDOCX(path)
	case ".txt", ".text":
		doc, err = openText(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrPageExtraction, ext)
	}
	if err != nil {
		return nil, err
	}

	p.logger.Debug("document opened", "path", path, "pages", doc.PageCount())
	return doc, nil
}

// pagedText is a document whose pages were fully extracted at open time.
type pagedText struct {
	path  string
	pages []string
}

func (d *pagedText) PageCount() int {
	return len(d.pages)
}

func (d *pagedText) PageText(index int) (string, error) {
	if index < 0 || index >= len(d.pages) {
		return "", pageOutOfRange(d.path, index, len(d.pages))
	}
	return d.pages[index], nil
}

func (d *pagedText) Close() error {
	return nil
}

func openText(path string) (*pagedText, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %v", ErrPageExtraction, err)
	}
	return &pagedText{path: path, pages: strings.Split(string(raw), "\f")}, nil
}

func pageOutOfRange(path string, index, count int) error {
	return fmt.Errorf("%w: %s: page %d out of range (document has %d pages)", ErrPageExtraction, path, index, count)
}
