package util

import (
	"sort"
	"strings"
	"unicode"
)

// DisplayEvidenceSnippet picks the resume lines or sentences that share the
// most terms with the job description.
func DisplayEvidenceSnippet(text, jobDescription string, maxRunes int) string {
	text = SanitizeText(text)
	if text == "" {
		return ""
	}
	terms := meaningfulTerms(jobDescription)
	if len(terms) == 0 {
		return trimClean(text, maxRunes)
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return trimClean(text, maxRunes)
	}

	type scored struct {
		sentence string
		score    int
	}
	list := make([]scored, 0, len(sentences))
	for _, s := range sentences {
		low := strings.ToLower(s)
		score := 0
		for _, term := range terms {
			if strings.Contains(low, term) {
				score++
			}
		}
		list = append(list, scored{sentence: s, score: score})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	if list[0].score == 0 {
		return trimClean(text, maxRunes)
	}
	best := list[0].sentence
	if len(list) > 1 && list[1].score > 0 {
		return trimClean(best+" "+list[1].sentence, maxRunes)
	}
	return trimClean(best, maxRunes)
}

// splitSentences breaks on sentence punctuation and on line breaks, since
// resume text is mostly bullet lines.
func splitSentences(s string) []string {
	out := make([]string, 0, 16)
	var b strings.Builder
	flush := func() {
		x := strings.TrimSpace(b.String())
		if x != "" {
			out = append(out, x)
		}
		b.Reset()
	}
	for _, r := range s {
		if r == '\n' || r == '\r' {
			flush()
			continue
		}
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return out
}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "that": {}, "this": {},
	"are": {}, "was": {}, "were": {}, "you": {}, "your": {}, "our": {}, "will": {},
	"who": {}, "have": {}, "has": {}, "years": {}, "year": {}, "experience": {},
	"role": {}, "team": {}, "ideal": {}, "candidate": {}, "strong": {},
}

func meaningfulTerms(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '+' && r != '#'
	})
	uniq := map[string]struct{}{}
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		if _, ok := uniq[f]; ok {
			continue
		}
		uniq[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

func trimClean(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 280
	}
	s = SanitizeText(s)
	s = strings.Join(strings.Fields(s), " ")

	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			out = append(out, r)
		}
	}
	runes := []rune(strings.TrimSpace(string(out)))
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "..."
	}
	return string(runes)
}
