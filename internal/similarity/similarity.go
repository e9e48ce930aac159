// Package similarity scores how much of one document's vocabulary is
// covered by another's word-frequency distribution.
package similarity

import "pdfsim/internal/freq"

// Score sums, over every token of b, the weight a gives that token. The
// measure is directional: a is the reference vocabulary and Score(a, b)
// generally differs from Score(b, a). It is not normalized.
func Score(a, b freq.Distribution) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	total := 0.0
	for _, tok := range b.Tokens() {
		total += a.Get(tok)
	}
	return total
}
