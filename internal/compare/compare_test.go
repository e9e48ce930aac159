package compare

import (
	"context"
	"errors"
	"math"
	"testing"

	"pdfsim/internal/pagerange"
	"pdfsim/internal/tokenize"
)

var errBroken = errors.New("broken page")

type fakeDocument struct {
	pages  []string
	failAt int
	closed *bool
}

func (d *fakeDocument) PageCount() int { return len(d.pages) }

func (d *fakeDocument) PageText(index int) (string, error) {
	if index == d.failAt {
		return "", errBroken
	}
	return d.pages[index], nil
}

func (d *fakeDocument) Close() error {
	if d.closed != nil {
		*d.closed = true
	}
	return nil
}

type fakeProvider struct {
	docs   map[string][]string
	failAt map[string]int
	opened []string
	closed map[string]*bool
}

func newFakeProvider(docs map[string][]string) *fakeProvider {
	return &fakeProvider{docs: docs, failAt: map[string]int{}, closed: map[string]*bool{}}
}

func (p *fakeProvider) Open(_ context.Context, path string) (Document, error) {
	p.opened = append(p.opened, path)
	pages, ok := p.docs[path]
	if !ok {
		return nil, errors.New("no such document")
	}
	failAt, ok := p.failAt[path]
	if !ok {
		failAt = -1
	}
	closed := false
	p.closed[path] = &closed
	return &fakeDocument{pages: pages, failAt: failAt, closed: &closed}, nil
}

func TestCompareEndToEnd(t *testing.T) {
	provider := newFakeProvider(map[string][]string{
		"one.pdf": {"Cat cat", "dog"},
		"two.pdf": {"DOG", "dog."},
	})
	c := New(provider, tokenize.Normalizer{}, nil)

	res, err := c.Compare(context.Background(), "one.pdf", pagerange.All(), "two.pdf", pagerange.All())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if math.Abs(res.Score-1.0/3.0) > 1e-9 {
		t.Fatalf("expected 1/3, got %f", res.Score)
	}
	if res.First.TokenCount != 3 || res.First.Vocabulary != 2 || res.First.PagesUsed != 2 {
		t.Fatalf("unexpected first summary: %+v", res.First)
	}
	if res.Second.TokenCount != 2 || res.Second.Vocabulary != 1 {
		t.Fatalf("unexpected second summary: %+v", res.Second)
	}
	for path, closed := range provider.closed {
		if !*closed {
			t.Fatalf("document %s was not closed", path)
		}
	}

	reversed, err := c.CompareDocuments(context.Background(), "two.pdf", pagerange.All(), "one.pdf", pagerange.All())
	if err != nil {
		t.Fatalf("compare reversed: %v", err)
	}
	if math.Abs(reversed-1.0) > 1e-9 {
		t.Fatalf("expected reversed score 1, got %f", reversed)
	}
}

func TestCompareAppliesPageRanges(t *testing.T) {
	provider := newFakeProvider(map[string][]string{
		"a": {"alpha", "beta", "alpha", "gamma"},
		"b": {"alpha beta"},
	})
	c := New(provider, tokenize.Normalizer{}, nil)

	score, err := c.CompareDocuments(context.Background(),
		"a", pagerange.Spec{Start: 0, Step: 2},
		"b", pagerange.Spec{Start: 0, Stop: pagerange.StopAt(100), Step: 1},
	)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	// Pages 0 and 2 of "a" are both "alpha".
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected 1, got %f", score)
	}
}

func TestCompareAgainstEmptySelection(t *testing.T) {
	provider := newFakeProvider(map[string][]string{
		"a": {"cat dog", "cat"},
		"b": {"cat"},
	})
	c := New(provider, tokenize.Normalizer{}, nil)

	score, err := c.CompareDocuments(context.Background(),
		"a", pagerange.All(),
		"b", pagerange.Spec{Start: 5, Stop: pagerange.StopAt(5), Step: 1},
	)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0, got %f", score)
	}
}

func TestCompareRejectsInvalidRangeBeforeOpening(t *testing.T) {
	provider := newFakeProvider(map[string][]string{"a": {"x"}, "b": {"y"}})
	c := New(provider, tokenize.Normalizer{}, nil)

	_, err := c.Compare(context.Background(), "a", pagerange.All(), "b", pagerange.Spec{Step: 0})
	if !errors.Is(err, pagerange.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if len(provider.opened) != 0 {
		t.Fatalf("expected no documents opened, got %v", provider.opened)
	}
}

func TestCompareFailsFastOnFirstDocument(t *testing.T) {
	provider := newFakeProvider(map[string][]string{"b": {"y"}})
	c := New(provider, tokenize.Normalizer{}, nil)

	_, err := c.Compare(context.Background(), "missing.pdf", pagerange.All(), "b", pagerange.All())
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("expected DocumentError, got %T", err)
	}
	if docErr.Position != 1 || docErr.Path != "missing.pdf" || docErr.Page != -1 {
		t.Fatalf("unexpected error details: %+v", docErr)
	}
	if len(provider.opened) != 1 {
		t.Fatalf("second document should not be opened, opened %v", provider.opened)
	}
}

func TestCompareReportsFailingPage(t *testing.T) {
	provider := newFakeProvider(map[string][]string{
		"a": {"x"},
		"b": {"one", "two", "three"},
	})
	provider.failAt["b"] = 2
	c := New(provider, tokenize.Normalizer{}, nil)

	_, err := c.Compare(context.Background(), "a", pagerange.All(), "b", pagerange.All())
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("expected DocumentError, got %v", err)
	}
	if docErr.Position != 2 || docErr.Page != 2 {
		t.Fatalf("unexpected error details: %+v", docErr)
	}
	if !errors.Is(err, errBroken) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	if !*provider.closed["b"] {
		t.Fatal("expected failing document to be closed")
	}
}

func TestCompareStopsOnCanceledContext(t *testing.T) {
	provider := newFakeProvider(map[string][]string{"a": {"x", "y"}, "b": {"y"}})
	c := New(provider, tokenize.Normalizer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Compare(ctx, "a", pagerange.All(), "b", pagerange.All())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProfileDropEmptyTokens(t *testing.T) {
	provider := newFakeProvider(map[string][]string{"a": {"cat -- 42 dog"}})

	faithful, err := New(provider, tokenize.Normalizer{}, nil).Profile(context.Background(), "a", pagerange.All())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(faithful.Tokens) != 4 {
		t.Fatalf("expected empty tokens retained, got %q", faithful.Tokens)
	}

	dropped, err := New(provider, tokenize.Normalizer{DropEmpty: true}, nil).Profile(context.Background(), "a", pagerange.All())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(dropped.Tokens) != 2 {
		t.Fatalf("expected empty tokens dropped, got %q", dropped.Tokens)
	}
}

func TestCompareWithMatchesCompare(t *testing.T) {
	provider := newFakeProvider(map[string][]string{
		"ref":  {"cat cat dog"},
		"cand": {"dog dog"},
	})
	c := New(provider, tokenize.Normalizer{}, nil)

	ref, err := c.Profile(context.Background(), "ref", pagerange.All())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	res, err := c.CompareWith(context.Background(), ref, "cand", pagerange.All())
	if err != nil {
		t.Fatalf("compare with: %v", err)
	}
	direct, err := c.CompareDocuments(context.Background(), "ref", pagerange.All(), "cand", pagerange.All())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if res.Score != direct {
		t.Fatalf("expected %f, got %f", direct, res.Score)
	}

	_, err = c.CompareWith(context.Background(), ref, "missing", pagerange.All())
	var docErr *DocumentError
	if !errors.As(err, &docErr) || docErr.Position != 2 {
		t.Fatalf("expected DocumentError for position 2, got %v", err)
	}
}
