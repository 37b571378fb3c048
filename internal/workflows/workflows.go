package workflows

import (
	"errors"
	"path/filepath"
	"time"

	"resumerank/internal/activities"
	"resumerank/internal/models"
	"resumerank/internal/screening"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetScreeningProgress = "GetScreeningProgress"

const (
	StatusListing    = "listing"
	StatusExtracting = "extracting"
	StatusRanking    = "ranking"
	StatusWriting    = "writing"
	StatusCompleted  = "completed"
)

// ScreeningWorkflow ranks every PDF in InputDir against the job description
// and writes the export files. Resumes that fail extraction are reported
// and skipped; they do not fail the run.
func ScreeningWorkflow(ctx workflow.Context, input ScreeningInput) (string, error) {
	progress := ScreeningProgress{
		ScreeningID:  input.ScreeningID,
		Status:       StatusListing,
		PerCandidate: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetScreeningProgress, func() (ScreeningProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        20 * time.Second,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{activities.DocumentFormatErrorType, "InvalidInputError"},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	logger := workflow.GetLogger(ctx)

	var listOut activities.ListPDFsOutput
	if err := workflow.ExecuteActivity(ctx, "ListPDFsActivity", activities.ListPDFsInput{InputDir: input.InputDir}).Get(ctx, &listOut); err != nil {
		return "", err
	}
	progress.Total = len(listOut.Paths)
	progress.Status = StatusExtracting

	futures := make([]workflow.Future, 0, len(listOut.Paths))
	for _, path := range listOut.Paths {
		progress.PerCandidate[filepath.Base(path)] = "extracting"
		futures = append(futures, workflow.ExecuteActivity(ctx, "ExtractTextActivity", activities.ExtractTextInput{ScreeningID: input.ScreeningID, Path: path}))
	}

	candidates := make([]screening.Extracted, 0, len(futures))
	failures := make([]models.Failure, 0)
	for i, f := range futures {
		name := filepath.Base(listOut.Paths[i])
		var out activities.ExtractTextOutput
		if err := f.Get(ctx, &out); err != nil {
			logger.Warn("resume extraction failed", "name", name, "error", err)
			progress.Failed++
			progress.PerCandidate[name] = "failed"
			failures = append(failures, models.Failure{Name: name, Reason: extractFailureReason(err)})
			continue
		}
		progress.Extracted++
		progress.PerCandidate[name] = "extracted"
		candidates = append(candidates, out.Candidate)
	}

	progress.Status = StatusRanking
	var rankOut activities.RankOutput
	if err := workflow.ExecuteActivity(ctx, "RankActivity", activities.RankInput{
		JobDescription: input.JobDescription,
		Candidates:     candidates,
	}).Get(ctx, &rankOut); err != nil {
		return "", err
	}
	for _, r := range rankOut.Results {
		progress.PerCandidate[r.Name] = "ranked"
	}

	progress.Status = StatusWriting
	var writeOut activities.WriteResultsOutput
	if err := workflow.ExecuteActivity(ctx, "WriteResultsActivity", activities.WriteResultsInput{
		ScreeningID: input.ScreeningID,
		Results:     rankOut.Results,
		Failures:    failures,
	}).Get(ctx, &writeOut); err != nil {
		return "", err
	}

	progress.Status = StatusCompleted
	progress.ResultsPath = writeOut.CSVPath
	logger.Info("screening completed", "screening_id", input.ScreeningID, "ranked", len(rankOut.Results), "failed", progress.Failed)
	return writeOut.CSVPath, nil
}

func extractFailureReason(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == activities.DocumentFormatErrorType {
		return "not a readable PDF"
	}
	return err.Error()
}
