// Package text turns page text into term-frequency vectors over a per-tier vocabulary.
package text

import (
	"strings"
	"unicode"
)

// Tokenize lowercases s and splits it on every non-alphanumeric rune, dropping empty pieces.
// Alphabetic marks such as Indic vowel signs stay inside their word.
// No stemming is applied.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Other_Alphabetic, r)
	})
}
