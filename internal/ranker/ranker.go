// Package ranker scores candidate texts against a query by TF-IDF cosine
// similarity.
package ranker

import (
	"fmt"
	"sort"

	"resumerank/internal/models"
	"resumerank/internal/util"
	"resumerank/internal/vector"
)

// Score is a candidate's similarity to the query; Index is its input position.
type Score struct {
	Index int
	Value float64
}

// Rank fits a vocabulary over the query and all candidates (the query counts
// as one document for IDF) and returns one score per candidate, in input
// order.
func Rank(query string, candidates []string) []Score {
	if len(candidates) == 0 {
		return []Score{}
	}
	docs := make([]string, 0, len(candidates)+1)
	docs = append(docs, query)
	docs = append(docs, candidates...)

	_, vecs := vector.Fit(docs)
	q := vecs[0]
	out := make([]Score, len(candidates))
	for i, v := range vecs[1:] {
		out[i] = Score{Index: i, Value: vector.Cosine(q, v)}
	}
	return out
}

// RankDocuments scores texts against query and labels each with the name at
// the same position. Results are sorted by descending score; ties keep
// input order.
func RankDocuments(query string, names, texts []string) ([]models.RankedResult, error) {
	if len(names) != len(texts) {
		return nil, fmt.Errorf("rank: %d names for %d texts: %w", len(names), len(texts), util.ErrInvalidInput)
	}
	scores := Rank(query, texts)
	out := make([]models.RankedResult, len(scores))
	for i, s := range scores {
		out[i] = models.RankedResult{Index: s.Index, Name: names[s.Index], Score: s.Value}
	}
	SortResults(out)
	return out, nil
}

func SortResults(results []models.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
