package util

import "strings"

// SanitizeText drops NUL bytes and other non-printing controls that PDF text
// layers often carry, keeping newlines and tabs.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 || ch == 0x7f {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}

// SanitizeName flattens a candidate name to a single printable line.
func SanitizeName(s string) string {
	return strings.Join(strings.Fields(SanitizeText(s)), " ")
}
