package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

func openDOCX(path string) (*pagedText, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %v", ErrPageExtraction, err)
	}
	text, err := parseDOCX(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPageExtraction, path, err)
	}
	return &pagedText{path: path, pages: []string{text}}, nil
}

const docxBody = "word/document.xml"

// parseDOCX returns the body text of a DOCX archive, one line per
// paragraph. DOCX carries no reliable pagination so callers treat the
// result as a single page.
func parseDOCX(raw []byte) (string, error) {
	body, err := zipEntry(raw, docxBody)
	if err != nil {
		return "", err
	}
	return paragraphText(body)
}

func zipEntry(raw []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open docx zip: %w", err)
	}
	f, err := zr.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s not found", name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// paragraphText collects w:t runs per w:p. Tabs and line breaks inside a
// paragraph become spaces.
func paragraphText(body []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		paragraphs []string
		current    strings.Builder
		inRun      bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", docxBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "tab", "br", "cr":
				current.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inRun {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.Join(paragraphs, "\n"), nil
}
