package workflows

import (
	"context"
	"testing"

	"resumerank/internal/activities"
	"resumerank/internal/models"
	"resumerank/internal/screening"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerScreeningActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "ListPDFsActivity", func(context.Context, activities.ListPDFsInput) (activities.ListPDFsOutput, error) {
		return activities.ListPDFsOutput{}, nil
	})
	registerActivityName(env, "ExtractTextActivity", func(context.Context, activities.ExtractTextInput) (activities.ExtractTextOutput, error) {
		return activities.ExtractTextOutput{}, nil
	})
	registerActivityName(env, "RankActivity", func(context.Context, activities.RankInput) (activities.RankOutput, error) {
		return activities.RankOutput{}, nil
	})
	registerActivityName(env, "WriteResultsActivity", func(context.Context, activities.WriteResultsInput) (activities.WriteResultsOutput, error) {
		return activities.WriteResultsOutput{}, nil
	})
}

func TestScreeningWorkflowSkipsUnreadableResumes(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ScreeningWorkflow)
	registerScreeningActivities(env)

	good := screening.Extracted{Name: "go.pdf", CandidateID: "g", TextPath: "/out/s1/texts/g.txt"}
	ranked := []models.Candidate{{RankedResult: models.RankedResult{Index: 0, Name: "go.pdf", Score: 0.8}, CandidateID: "g"}}

	env.OnActivity("ListPDFsActivity", mock.Anything, activities.ListPDFsInput{InputDir: "/in/s1"}).
		Return(activities.ListPDFsOutput{Paths: []string{"/in/s1/bad.pdf", "/in/s1/go.pdf"}}, nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, activities.ExtractTextInput{ScreeningID: "s1", Path: "/in/s1/bad.pdf"}).
		Return(activities.ExtractTextOutput{}, temporal.NewNonRetryableApplicationError("bad header", activities.DocumentFormatErrorType, nil))
	env.OnActivity("ExtractTextActivity", mock.Anything, activities.ExtractTextInput{ScreeningID: "s1", Path: "/in/s1/go.pdf"}).
		Return(activities.ExtractTextOutput{Candidate: good}, nil)
	env.OnActivity("RankActivity", mock.Anything, activities.RankInput{JobDescription: "golang", Candidates: []screening.Extracted{good}}).
		Return(activities.RankOutput{Results: ranked}, nil)
	env.OnActivity("WriteResultsActivity", mock.Anything, mock.MatchedBy(func(in activities.WriteResultsInput) bool {
		return in.ScreeningID == "s1" && len(in.Results) == 1 && len(in.Failures) == 1 &&
			in.Failures[0] == models.Failure{Name: "bad.pdf", Reason: "not a readable PDF"}
	})).Return(activities.WriteResultsOutput{CSVPath: "/out/s1/results.csv"}, nil)

	env.ExecuteWorkflow(ScreeningWorkflow, ScreeningInput{ScreeningID: "s1", JobDescription: "golang", InputDir: "/in/s1"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "/out/s1/results.csv", out)

	val, err := env.QueryWorkflow(QueryGetScreeningProgress)
	require.NoError(t, err)
	var prog ScreeningProgress
	require.NoError(t, val.Get(&prog))
	require.Equal(t, StatusCompleted, prog.Status)
	require.Equal(t, 2, prog.Total)
	require.Equal(t, 1, prog.Extracted)
	require.Equal(t, 1, prog.Failed)
	require.Equal(t, "failed", prog.PerCandidate["bad.pdf"])
	require.Equal(t, "ranked", prog.PerCandidate["go.pdf"])
	env.AssertExpectations(t)
}

func TestScreeningWorkflowEmptyDirectory(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ScreeningWorkflow)
	registerScreeningActivities(env)

	env.OnActivity("ListPDFsActivity", mock.Anything, mock.Anything).Return(activities.ListPDFsOutput{}, nil)
	env.OnActivity("RankActivity", mock.Anything, mock.Anything).Return(activities.RankOutput{}, nil)
	env.OnActivity("WriteResultsActivity", mock.Anything, mock.Anything).Return(activities.WriteResultsOutput{CSVPath: "/out/s2/results.csv"}, nil)

	env.ExecuteWorkflow(ScreeningWorkflow, ScreeningInput{ScreeningID: "s2", JobDescription: "anything", InputDir: "/in/s2"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
}
