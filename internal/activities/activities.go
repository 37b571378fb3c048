package activities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resumerank/internal/config"
	"resumerank/internal/export"
	"resumerank/internal/models"
	"resumerank/internal/screening"
	"resumerank/internal/util"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

type Activities struct {
	cfg config.Config
}

func New(cfg config.Config) *Activities {
	return &Activities{cfg: cfg}
}

func (a *Activities) ListPDFsActivity(ctx context.Context, in ListPDFsInput) (ListPDFsOutput, error) {
	_ = ctx
	paths, err := util.ListPDFs(in.InputDir)
	if err != nil {
		return ListPDFsOutput{}, err
	}
	return ListPDFsOutput{Paths: paths}, nil
}

// ExtractTextActivity reads one resume from disk. Unparsable PDFs fail
// without retry; extraction is deterministic. With a ScreeningID the text is
// written under the run's output directory and only its path is returned,
// keeping workflow history small.
func (a *Activities) ExtractTextActivity(ctx context.Context, in ExtractTextInput) (ExtractTextOutput, error) {
	b, err := os.ReadFile(in.Path)
	if err != nil {
		return ExtractTextOutput{}, fmt.Errorf("read resume: %w", err)
	}
	e, err := screening.ExtractOne(models.Document{Name: filepath.Base(in.Path), Content: b})
	if err != nil {
		if errors.Is(err, util.ErrDocumentFormat) {
			return ExtractTextOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), DocumentFormatErrorType, err)
		}
		return ExtractTextOutput{}, err
	}
	activity.GetLogger(ctx).Info("extracted resume", "name", e.Name, "runes", len([]rune(e.Text)))
	if in.ScreeningID == "" {
		return ExtractTextOutput{Candidate: e}, nil
	}
	e.TextPath = a.textPath(in.ScreeningID, e.CandidateID)
	if err := util.WriteTextAtomic(e.TextPath, e.Text); err != nil {
		return ExtractTextOutput{}, fmt.Errorf("write extracted text: %w", err)
	}
	e.Text = ""
	return ExtractTextOutput{Candidate: e}, nil
}

func (a *Activities) textPath(screeningID, candidateID string) string {
	return filepath.Join(util.SafeJoin(a.cfg.DataOutRoot, screeningID), "texts", candidateID+".txt")
}

func (a *Activities) RankActivity(ctx context.Context, in RankInput) (RankOutput, error) {
	_ = ctx
	candidates := make([]screening.Extracted, len(in.Candidates))
	for i, c := range in.Candidates {
		if c.Text == "" && c.TextPath != "" {
			b, err := os.ReadFile(c.TextPath)
			if err != nil {
				return RankOutput{}, fmt.Errorf("read extracted text for %s: %w", c.Name, err)
			}
			c.Text = string(b)
		}
		candidates[i] = c
	}
	rep, err := screening.RankExtracted(in.JobDescription, candidates, screening.Options{HighlightRunes: a.cfg.HighlightRunes})
	if err != nil {
		return RankOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidInputError", err)
	}
	return RankOutput{Results: rep.Results}, nil
}

func (a *Activities) WriteResultsActivity(ctx context.Context, in WriteResultsInput) (WriteResultsOutput, error) {
	_ = ctx
	base := util.SafeJoin(a.cfg.DataOutRoot, in.ScreeningID)
	rep := screening.Report{Results: in.Results, Failures: in.Failures}
	ranked := rep.RankedResults()

	csvBytes, err := export.CSV(ranked)
	if err != nil {
		return WriteResultsOutput{}, err
	}
	out := WriteResultsOutput{
		CSVPath:  filepath.Join(base, "results.csv"),
		XLSXPath: filepath.Join(base, "results.xlsx"),
	}
	if err := util.WriteBytesAtomic(out.CSVPath, csvBytes); err != nil {
		return WriteResultsOutput{}, err
	}
	xlsxBytes, err := export.XLSX(ranked)
	if err != nil {
		return WriteResultsOutput{}, err
	}
	if err := util.WriteBytesAtomic(out.XLSXPath, xlsxBytes); err != nil {
		return WriteResultsOutput{}, err
	}
	if err := util.WriteJSONAtomic(filepath.Join(base, "summary.json"), map[string]any{
		"screening_id": in.ScreeningID,
		"results":      in.Results,
		"failures":     in.Failures,
		"generated_at": time.Now().UTC(),
	}); err != nil {
		return WriteResultsOutput{}, err
	}
	return out, nil
}
