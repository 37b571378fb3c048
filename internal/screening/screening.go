// Package screening wires extraction and ranking into one batch call: the
// path that both the HTTP API and the batch worker take.
package screening

import (
	"errors"
	"fmt"
	"strings"

	"resumerank/internal/extract"
	"resumerank/internal/models"
	"resumerank/internal/ranker"
	"resumerank/internal/util"
)

type Options struct {
	HighlightRunes int
}

// Extracted is a resume whose text layer has already been read. Batch runs
// keep the text on disk at TextPath and leave Text empty until ranking.
type Extracted struct {
	Name        string `json:"name"`
	CandidateID string `json:"candidate_id"`
	Text        string `json:"text,omitempty"`
	TextPath    string `json:"text_path,omitempty"`
}

type Report struct {
	Results  []models.Candidate `json:"results"`
	Failures []models.Failure   `json:"failures"`
}

func (r Report) RankedResults() []models.RankedResult {
	out := make([]models.RankedResult, 0, len(r.Results))
	for _, c := range r.Results {
		out = append(out, c.RankedResult)
	}
	return out
}

// ExtractOne reads a single document. Only format errors are returned; an
// empty text layer is a valid result.
func ExtractOne(doc models.Document) (Extracted, error) {
	text, err := extract.Text(doc)
	if err != nil {
		return Extracted{}, err
	}
	return Extracted{Name: doc.Name, CandidateID: util.CandidateID(doc.Content), Text: text}, nil
}

// Screen extracts every document and ranks the ones that parsed. Documents
// that are not valid PDFs are listed in Failures and left out of Results.
func Screen(jobDescription string, docs []models.Document, opts Options) (Report, error) {
	extracted := make([]Extracted, 0, len(docs))
	failures := make([]models.Failure, 0)
	for _, d := range docs {
		e, err := ExtractOne(d)
		if err != nil {
			if !errors.Is(err, util.ErrDocumentFormat) {
				return Report{}, err
			}
			failures = append(failures, models.Failure{Name: d.Name, Reason: failureReason(err)})
			continue
		}
		extracted = append(extracted, e)
	}
	rep, err := RankExtracted(jobDescription, extracted, opts)
	if err != nil {
		return Report{}, err
	}
	rep.Failures = failures
	return rep, nil
}

// RankExtracted ranks pre-extracted resumes and attaches identity and
// highlight to each result.
func RankExtracted(jobDescription string, extracted []Extracted, opts Options) (Report, error) {
	names := make([]string, len(extracted))
	texts := make([]string, len(extracted))
	for i, e := range extracted {
		names[i] = e.Name
		texts[i] = e.Text
	}
	ranked, err := ranker.RankDocuments(jobDescription, names, texts)
	if err != nil {
		return Report{}, fmt.Errorf("rank resumes: %w", err)
	}
	results := make([]models.Candidate, 0, len(ranked))
	for _, r := range ranked {
		e := extracted[r.Index]
		results = append(results, models.Candidate{
			RankedResult: r,
			CandidateID:  e.CandidateID,
			Highlight:    util.DisplayEvidenceSnippet(e.Text, jobDescription, opts.HighlightRunes),
		})
	}
	return Report{Results: results, Failures: []models.Failure{}}, nil
}

func failureReason(err error) string {
	if errors.Is(err, util.ErrDocumentFormat) {
		return "not a readable PDF"
	}
	return strings.TrimSpace(err.Error())
}
