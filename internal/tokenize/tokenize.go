package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer turns extracted page text into word tokens. The zero value
// keeps words that clean down to nothing as empty tokens, matching the
// reference scoring output.
type Normalizer struct {
	DropEmpty bool
}

// Page splits text on whitespace, discards words of a single character and
// cleans the rest with Word.
func (n Normalizer) Page(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, raw := range fields {
		// Length is checked on the raw word, not the cleaned one.
		if utf8.RuneCountInString(raw) <= 1 {
			continue
		}
		word := Word(raw)
		if word == "" && n.DropEmpty {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// Pages normalizes each page in order and concatenates the tokens.
func (n Normalizer) Pages(pages []string) []string {
	var tokens []string
	for _, text := range pages {
		tokens = append(tokens, n.Page(text)...)
	}
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// Word lowercases raw and strips every rune that is not a letter.
func Word(raw string) string {
	lowered := cases.Lower(language.Und).String(raw)
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, lowered)
}
