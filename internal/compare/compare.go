// Package compare scores the word-frequency similarity of two documents.
//
// A Comparator resolves each document's page range, pulls the raw text of
// the selected pages from a Provider, normalizes it into tokens and builds a
// frequency distribution per document. The first document's distribution
// is the reference: the score is the mass it assigns to the second
// document's vocabulary, so argument order matters.
//
// Documents are read one after the other. If the first cannot be read the
// second is never opened, and no partial score is produced.
package compare

import (
	"context"
	"fmt"
	"log/slog"

	"pdfsim/internal/freq"
	"pdfsim/internal/logging"
	"pdfsim/internal/pagerange"
	"pdfsim/internal/similarity"
	"pdfsim/internal/tokenize"
)

// Document is an opened document that serves raw text by zero-based page.
type Document interface {
	PageCount() int
	PageText(index int) (string, error)
	Close() error
}

// Provider opens documents by path.
type Provider interface {
	Open(ctx context.Context, path string) (Document, error)
}

// Profile is one document's contribution to a comparison.
type Profile struct {
	Path         string
	Range        pagerange.Spec
	PageCount    int
	Pages        []int
	Tokens       []string
	Distribution freq.Distribution
}

func (p Profile) Summary() DocumentSummary {
	return DocumentSummary{
		Path:       p.Path,
		Range:      p.Range.String(),
		PageCount:  p.PageCount,
		PagesUsed:  len(p.Pages),
		TokenCount: len(p.Tokens),
		Vocabulary: len(p.Distribution),
	}
}

type DocumentSummary struct {
	Path       string `json:"path"`
	Range      string `json:"range"`
	PageCount  int    `json:"page_count"`
	PagesUsed  int    `json:"pages_used"`
	TokenCount int    `json:"token_count"`
	Vocabulary int    `json:"vocabulary"`
}

type Result struct {
	Score  float64         `json:"score"`
	First  DocumentSummary `json:"first"`
	Second DocumentSummary `json:"second"`
}

type Comparator struct {
	provider   Provider
	normalizer tokenize.Normalizer
	logger     *slog.Logger
}

func New(provider Provider, normalizer tokenize.Normalizer, logger *slog.Logger) *Comparator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Comparator{
		provider:   provider,
		normalizer: normalizer,
		logger:     logger.With("component", "compare"),
	}
}

// CompareDocuments returns only the similarity score of doc2 against doc1.
func (c *Comparator) CompareDocuments(ctx context.Context, doc1 string, range1 pagerange.Spec, doc2 string, range2 pagerange.Spec) (float64, error) {
	res, err := c.Compare(ctx, doc1, range1, doc2, range2)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

func (c *Comparator) Compare(ctx context.Context, doc1 string, range1 pagerange.Spec, doc2 string, range2 pagerange.Spec) (Result, error) {
	if err := range1.Validate(); err != nil {
		return Result{}, fmt.Errorf("document 1 range: %w", err)
	}
	if err := range2.Validate(); err != nil {
		return Result{}, fmt.Errorf("document 2 range: %w", err)
	}

	first, err := c.profile(ctx, 1, doc1, range1)
	if err != nil {
		return Result{}, err
	}
	second, err := c.profile(ctx, 2, doc2, range2)
	if err != nil {
		return Result{}, err
	}

	score := similarity.Score(first.Distribution, second.Distribution)
	c.logger.Info("documents compared",
		"first", doc1,
		"second", doc2,
		"score", score,
		"first_tokens", len(first.Tokens),
		"second_tokens", len(second.Tokens),
	)
	return Result{Score: score, First: first.Summary(), Second: second.Summary()}, nil
}

// Profile extracts, normalizes and models a single document.
func (c *Comparator) Profile(ctx context.Context, path string, spec pagerange.Spec) (Profile, error) {
	if err := spec.Validate(); err != nil {
		return Profile{}, err
	}
	return c.profile(ctx, 1, path, spec)
}

// CompareWith scores path against an already built reference profile. It
// is safe for concurrent use as long as the provider is.
func (c *Comparator) CompareWith(ctx context.Context, ref Profile, path string, spec pagerange.Spec) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, fmt.Errorf("document 2 range: %w", err)
	}
	other, err := c.profile(ctx, 2, path, spec)
	if err != nil {
		return Result{}, err
	}
	score := similarity.Score(ref.Distribution, other.Distribution)
	c.logger.Debug("document scored against reference", "reference", ref.Path, "path", path, "score", score)
	return Result{Score: score, First: ref.Summary(), Second: other.Summary()}, nil
}

func (c *Comparator) profile(ctx context.Context, position int, path string, spec pagerange.Spec) (Profile, error) {
	doc, err := c.provider.Open(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return Profile{}, ctx.Err()
		}
		return Profile{}, &DocumentError{Position: position, Path: path, Page: -1, Err: err}
	}
	defer doc.Close()

	pages, err := pagerange.Resolve(doc.PageCount(), spec)
	if err != nil {
		return Profile{}, fmt.Errorf("document %d range: %w", position, err)
	}

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return Profile{}, err
		}
		text, err := doc.PageText(page)
		if err != nil {
			return Profile{}, &DocumentError{Position: position, Path: path, Page: page, Err: err}
		}
		texts = append(texts, text)
	}

	tokens := c.normalizer.Pages(texts)
	dist := freq.Compute(tokens)
	c.logger.Debug("document profiled",
		"path", path,
		"range", spec.String(),
		"pages", len(pages),
		"tokens", len(tokens),
		"vocabulary", len(dist),
	)

	return Profile{
		Path:         path,
		Range:        spec,
		PageCount:    doc.PageCount(),
		Pages:        pages,
		Tokens:       tokens,
		Distribution: dist,
	}, nil
}
