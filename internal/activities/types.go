package activities

import (
	"resumerank/internal/models"
	"resumerank/internal/screening"
)

// DocumentFormatErrorType tags non-retryable extraction failures.
const DocumentFormatErrorType = "DocumentFormatError"

type ListPDFsInput struct {
	InputDir string `json:"input_dir"`
}

type ListPDFsOutput struct {
	Paths []string `json:"paths"`
}

type ExtractTextInput struct {
	ScreeningID string `json:"screening_id,omitempty"`
	Path        string `json:"path"`
}

type ExtractTextOutput struct {
	Candidate screening.Extracted `json:"candidate"`
}

type RankInput struct {
	JobDescription string                `json:"job_description"`
	Candidates     []screening.Extracted `json:"candidates"`
}

type RankOutput struct {
	Results []models.Candidate `json:"results"`
}

type WriteResultsInput struct {
	ScreeningID string             `json:"screening_id"`
	Results     []models.Candidate `json:"results"`
	Failures    []models.Failure   `json:"failures"`
}

type WriteResultsOutput struct {
	CSVPath  string `json:"csv_path"`
	XLSXPath string `json:"xlsx_path"`
}
