package models

// Document is a resume as received from the caller: a display name plus the
// raw PDF bytes. Content is never modified after construction.
type Document struct {
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

// RankedResult is one candidate's score against the job description.
// Index is the candidate's position in the input sequence.
type RankedResult struct {
	Index int     `json:"index"`
	Name  string  `json:"candidate"`
	Score float64 `json:"match_score"`
}

type Candidate struct {
	RankedResult
	CandidateID string `json:"candidate_id"`
	Highlight   string `json:"highlight,omitempty"`
}

type Failure struct {
	Name   string `json:"candidate"`
	Reason string `json:"reason"`
}
