package workflows

type ScreeningInput struct {
	ScreeningID    string `json:"screening_id"`
	JobDescription string `json:"job_description"`
	InputDir       string `json:"input_dir"`
}

type ScreeningProgress struct {
	ScreeningID  string            `json:"screening_id"`
	Status       string            `json:"status"`
	Total        int               `json:"total"`
	Extracted    int               `json:"extracted"`
	Failed       int               `json:"failed"`
	PerCandidate map[string]string `json:"per_candidate_status"`
	ResultsPath  string            `json:"results_path,omitempty"`
}
