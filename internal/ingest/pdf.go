package ingest

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

type pdfDocument struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	pages  int
}

func openPDF(path string) (doc *pdfDocument, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: open pdf %s: %v", ErrPageExtraction, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf %s: %v", ErrPageExtraction, path, err)
	}
	return &pdfDocument{path: path, file: f, reader: r, pages: r.NumPage()}, nil
}

func (d *pdfDocument) PageCount() int {
	return d.pages
}

// PageText returns the plain text of the zero-based page index.
func (d *pdfDocument) PageText(index int) (text string, err error) {
	if index < 0 || index >= d.pages {
		return "", pageOutOfRange(d.path, index, d.pages)
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %s: page %d: %v", ErrPageExtraction, d.path, index, r)
		}
	}()

	p := d.reader.Page(index + 1)
	if p.V.IsNull() {
		return "", fmt.Errorf("%w: %s: page %d has no page object", ErrPageExtraction, d.path, index)
	}
	content, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: page %d: %v", ErrPageExtraction, d.path, index, err)
	}
	return content, nil
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}
