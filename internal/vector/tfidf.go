// Package vector builds TF-IDF term vectors over a small document set and
// compares them by cosine similarity.
package vector

import (
	"math"
	"sort"
)

// Space is a vocabulary fitted to one set of documents. Dimensions are the
// distinct tokens in lexicographic order.
type Space struct {
	Terms []string
	index map[string]int
	idf   []float64
}

// Vector is a dense, L2-normalized TF-IDF vector in a Space.
type Vector []float64

// Fit builds the vocabulary and smoothed inverse document frequencies from
// docs: idf(t) = ln((1+n)/(1+df(t))) + 1.
func Fit(docs []string) (*Space, []Vector) {
	tokenized := make([][]string, len(docs))
	df := map[string]int{}
	for i, d := range docs {
		toks := Tokenize(d)
		tokenized[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	sp := &Space{Terms: terms, index: make(map[string]int, len(terms)), idf: make([]float64, len(terms))}
	n := float64(len(docs))
	for i, t := range terms {
		sp.index[t] = i
		sp.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vecs := make([]Vector, len(docs))
	for i, toks := range tokenized {
		vecs[i] = sp.weigh(toks)
	}
	return sp, vecs
}

func (s *Space) weigh(tokens []string) Vector {
	v := make(Vector, len(s.Terms))
	for _, t := range tokens {
		if i, ok := s.index[t]; ok {
			v[i]++
		}
	}
	for i := range v {
		v[i] *= s.idf[i]
	}
	normalize(v)
	return v
}

func normalize(v Vector) {
	n := Norm(v)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] /= n
	}
}

func Norm(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
