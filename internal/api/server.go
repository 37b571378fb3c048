package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"resumerank/internal/config"
	"resumerank/internal/export"
	"resumerank/internal/models"
	"resumerank/internal/screening"
	"resumerank/internal/util"
	"resumerank/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

var (
	errNoJobDescription = errors.New("job_description is required")
	errNoFiles          = errors.New("no files provided")
	errBatchDisabled    = errors.New("batch screening is disabled")
)

type Server struct {
	cfg      config.Config
	temporal tclient.Client
}

// NewServer builds the HTTP surface. tc may be nil, which disables the
// /screenings endpoints.
func NewServer(cfg config.Config, tc tclient.Client) *Server {
	return &Server{cfg: cfg, temporal: tc}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/rank", s.handleRank)
	mux.HandleFunc("/screenings", s.handleScreenings)
	mux.HandleFunc("/screenings/", s.handleScreeningsScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}
	jobDescription := strings.TrimSpace(r.FormValue("job_description"))
	if jobDescription == "" {
		writeErr(w, http.StatusBadRequest, errNoJobDescription)
		return
	}
	files := pdfFiles(r.MultipartForm)
	if len(files) == 0 {
		writeErr(w, http.StatusBadRequest, errNoFiles)
		return
	}

	docs := make([]models.Document, 0, len(files))
	for _, fh := range files {
		doc, err := readUploadedDocument(fh)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		docs = append(docs, doc)
	}

	rep, err := screening.Screen(jobDescription, docs, screening.Options{HighlightRunes: s.cfg.HighlightRunes})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "csv":
		b, err := export.CSV(rep.RankedResults())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeAttachment(w, "text/csv", export.CSVFilename, b)
	case "xlsx":
		b, err := export.XLSX(rep.RankedResults())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSXFilename, b)
	default:
		writeJSON(w, http.StatusOK, rep)
	}
}

func (s *Server) handleScreenings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if s.temporal == nil {
		writeErr(w, http.StatusServiceUnavailable, errBatchDisabled)
		return
	}

	screeningID := uuid.NewString()
	inDir := filepath.Join(s.cfg.DataInRoot, screeningID)
	var jobDescription string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
			return
		}
		jobDescription = strings.TrimSpace(r.FormValue("job_description"))
		files := pdfFiles(r.MultipartForm)
		if jobDescription == "" {
			writeErr(w, http.StatusBadRequest, errNoJobDescription)
			return
		}
		if len(files) == 0 {
			writeErr(w, http.StatusBadRequest, errNoFiles)
			return
		}
		if err := util.EnsureDir(inDir); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		for _, fh := range files {
			if _, err := saveUploadedFile(inDir, fh); err != nil {
				writeErr(w, http.StatusInternalServerError, err)
				return
			}
		}
	} else {
		var req struct {
			JobDescription string `json:"job_description"`
			InputDir       string `json:"input_dir"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		jobDescription = strings.TrimSpace(req.JobDescription)
		if jobDescription == "" {
			writeErr(w, http.StatusBadRequest, errNoJobDescription)
			return
		}
		if dir := strings.TrimSpace(req.InputDir); dir != "" {
			confined, err := util.JoinWithin(s.cfg.DataInRoot, dir)
			if err != nil {
				writeErr(w, http.StatusBadRequest, err)
				return
			}
			inDir = confined
		}
	}

	wfID := "screening-" + screeningID
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       wfID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.ScreeningWorkflow, workflows.ScreeningInput{
		ScreeningID:    screeningID,
		JobDescription: jobDescription,
		InputDir:       inDir,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"screening_id": screeningID,
		"workflow_id":  we.GetID(),
		"run_id":       we.GetRunID(),
	})
}

func (s *Server) handleScreeningsScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/screenings/"), "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	screeningID := filepath.Base(parts[0])
	resultsPath := filepath.Join(util.SafeJoin(s.cfg.DataOutRoot, screeningID), "results.csv")

	switch parts[1] {
	case "progress":
		if s.temporal != nil {
			resp, err := s.temporal.QueryWorkflow(r.Context(), "screening-"+screeningID, "", workflows.QueryGetScreeningProgress)
			if err == nil {
				var prog workflows.ScreeningProgress
				if err := resp.Get(&prog); err != nil {
					writeErr(w, http.StatusInternalServerError, err)
					return
				}
				writeJSON(w, http.StatusOK, prog)
				return
			}
		}
		// Closed workflows may no longer answer queries; the export file
		// is the durable record that the run finished.
		if _, err := os.Stat(resultsPath); err != nil {
			writeErr(w, http.StatusNotFound, fmt.Errorf("screening not found"))
			return
		}
		writeJSON(w, http.StatusOK, workflows.ScreeningProgress{
			ScreeningID: screeningID,
			Status:      workflows.StatusCompleted,
			ResultsPath: resultsPath,
		})
	case "results":
		b, err := os.ReadFile(resultsPath)
		if err != nil {
			writeErr(w, http.StatusNotFound, fmt.Errorf("results not found"))
			return
		}
		writeAttachment(w, "text/csv", export.CSVFilename, b)
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

func (s *Server) maxUploadBytes() int64 {
	mb := s.cfg.MaxUploadMB
	if mb <= 0 {
		mb = 64
	}
	return int64(mb) << 20
}

func pdfFiles(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	files := form.File["files"]
	if len(files) == 0 {
		if single, ok := firstSingleFile(form.File); ok {
			files = []*multipart.FileHeader{single}
		}
	}
	out := make([]*multipart.FileHeader, 0, len(files))
	for _, fh := range files {
		if util.IsPDFName(fh.Filename) {
			out = append(out, fh)
		}
	}
	return out
}

func readUploadedDocument(fh *multipart.FileHeader) (models.Document, error) {
	src, err := fh.Open()
	if err != nil {
		return models.Document{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	b, err := io.ReadAll(src)
	if err != nil {
		return models.Document{}, fmt.Errorf("read upload: %w", err)
	}
	return models.Document{Name: filepath.Base(fh.Filename), Content: b}, nil
}

func saveUploadedFile(dstDir string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dstDir, "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	finalPath := util.UniquePath(dstDir, fh.Filename)
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", fmt.Errorf("atomic move upload: %w", err)
	}
	return finalPath, nil
}

func firstSingleFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "RR-API-4000"

	switch {
	case status == http.StatusServiceUnavailable:
		return apiError{Code: "RR-API-5030", Message: "Batch screening is not enabled on this server."}
	case status >= 500:
		return apiError{Code: "RR-API-5000", Message: "Internal server error. Please retry or check service logs."}
	case status == http.StatusBadRequest:
		code = "RR-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "RR-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "RR-API-4009"
		msg = "Screening could not be started. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "RR-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case errors.Is(err, errNoJobDescription):
			msg = "Please enter a job description."
		case errors.Is(err, errNoFiles):
			msg = "Please upload at least one PDF resume."
		case errors.Is(err, util.ErrInvalidInput):
			msg = "input_dir must be a relative path inside the data directory."
		case strings.Contains(strings.ToLower(err.Error()), "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
