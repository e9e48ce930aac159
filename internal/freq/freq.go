package freq

import (
	"sort"
)

// Distribution maps each token to its share of all token occurrences.
// A distribution built from a non-empty sequence sums to 1.
type Distribution map[string]float64

type Entry struct {
	Token  string
	Weight float64
}

// Compute builds the distribution by adding 1/N for every occurrence, in
// sequence order.
func Compute(tokens []string) Distribution {
	dist := make(Distribution)
	if len(tokens) == 0 {
		return dist
	}

	increment := 1 / float64(len(tokens))
	for _, tok := range tokens {
		dist[tok] += increment
	}
	return dist
}

// Get returns the weight of tok, zero when it never occurred.
func (d Distribution) Get(tok string) float64 {
	return d[tok]
}

// Tokens returns the vocabulary in sorted order.
func (d Distribution) Tokens() []string {
	out := make([]string, 0, len(d))
	for tok := range d {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

func (d Distribution) Sum() float64 {
	total := 0.0
	for _, tok := range d.Tokens() {
		total += d[tok]
	}
	return total
}

// Top returns up to n entries, heaviest first; ties are broken by token.
// n <= 0 returns every entry.
func (d Distribution) Top(n int) []Entry {
	entries := make([]Entry, 0, len(d))
	for tok, w := range d {
		entries = append(entries, Entry{Token: tok, Weight: w})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Token < entries[j].Token
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
