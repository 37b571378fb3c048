package screening

import (
	"strings"
	"testing"

	"resumerank/internal/models"
	"resumerank/internal/pdftest"
	"resumerank/internal/util"

	"github.com/stretchr/testify/require"
)

func TestScreenRanksAndReportsFailures(t *testing.T) {
	python := pdftest.Build("Experienced python developer, five years in industry")
	docs := []models.Document{
		{Name: "designer.pdf", Content: pdftest.Build("Graphic designer skilled in Photoshop")},
		{Name: "broken.pdf", Content: []byte("garbage")},
		{Name: "python.pdf", Content: python},
		{Name: "scanned.pdf", Content: pdftest.Build("")},
	}
	rep, err := Screen("python developer with five years experience", docs, Options{HighlightRunes: 120})
	require.NoError(t, err)

	require.Len(t, rep.Results, 3)
	require.Equal(t, "python.pdf", rep.Results[0].Name)
	require.Equal(t, util.CandidateID(python), rep.Results[0].CandidateID)
	require.Contains(t, rep.Results[0].Highlight, "python developer")
	require.Greater(t, rep.Results[0].Score, rep.Results[1].Score)

	require.Equal(t, []models.Failure{{Name: "broken.pdf", Reason: "not a readable PDF"}}, rep.Failures)

	ranked := rep.RankedResults()
	require.Len(t, ranked, 3)
	require.Equal(t, "python.pdf", ranked[0].Name)
}

func TestScreenNoDocuments(t *testing.T) {
	rep, err := Screen("anything", nil, Options{})
	require.NoError(t, err)
	require.Empty(t, rep.Results)
	require.Empty(t, rep.Failures)
}

func TestRankExtractedKeepsIdentity(t *testing.T) {
	rep, err := RankExtracted("golang", []Extracted{
		{Name: "a.pdf", CandidateID: "id-a", Text: "java"},
		{Name: "b.pdf", CandidateID: "id-b", Text: "golang"},
	}, Options{})
	require.NoError(t, err)
	require.Equal(t, "id-b", rep.Results[0].CandidateID)
	require.Equal(t, 1, rep.Results[0].Index)
	require.Equal(t, "id-a", rep.Results[1].CandidateID)
}

func TestScreenBrokenCatalogIsPerDocumentFailure(t *testing.T) {
	broken := strings.Replace(string(pdftest.Build("hello world")), "/Type /Catalog", "/Type /Catal)g", 1)
	docs := []models.Document{
		{Name: "broken.pdf", Content: []byte(broken)},
		{Name: "ok.pdf", Content: pdftest.Build("hello world")},
	}
	rep, err := Screen("hello", docs, Options{})
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	require.Equal(t, "ok.pdf", rep.Results[0].Name)
	require.Equal(t, []models.Failure{{Name: "broken.pdf", Reason: "not a readable PDF"}}, rep.Failures)
}
