package vector

import (
	"strings"
	"unicode"
)

// minTokenRunes drops single-character tokens such as "a" or "I".
const minTokenRunes = 2

// Tokenize lowercases s and splits it into runs of word runes (letters,
// numbers of any Unicode class, and underscore). Runs shorter than two
// runes are discarded.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	out := make([]string, 0, len(s)/5)
	start := -1
	n := 0
	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
				n = 0
			}
			n++
			continue
		}
		if start >= 0 && n >= minTokenRunes {
			out = append(out, s[start:i])
		}
		start = -1
	}
	if start >= 0 && n >= minTokenRunes {
		out = append(out, s[start:])
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
