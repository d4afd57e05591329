package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/logging"
	"github.com/souravslg/Downfiles/internal/stream"
)

type infoRequest struct {
	URL string `json:"url"`
}

type downloadRequest struct {
	URL       string  `json:"url"`
	FormatID  string  `json:"format_id"`
	AudioOnly boolish `json:"audio_only"`
	Title     string  `json:"title"`
}

type jobResponse struct {
	JobID     string `json:"jobId"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	URL       string `json:"url"`
	FormatID  string `json:"format_id"`
	AudioOnly bool   `json:"audio_only"`
	Error     string `json:"error,omitempty"`
}

type createJobResponse struct {
	JobID       string `json:"jobId"`
	DownloadURL string `json:"downloadUrl"`
	StatusURL   string `json:"statusUrl"`
}

func jobToResponse(job *domain.Job) jobResponse {
	return jobResponse{
		JobID:     job.ID,
		Status:    string(job.Status),
		Progress:  job.Progress,
		URL:       job.Request.URL,
		FormatID:  job.Request.FormatID,
		AudioOnly: job.Request.AudioOnly,
		Error:     job.Error,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	info, err := s.svc.Probe(r.Context(), req.URL)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// decodeDownloadRequest accepts both the GET query form and the POST
// JSON form of a download request.
func decodeDownloadRequest(r *http.Request) (domain.ExtractionRequest, error) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		return domain.NewExtractionRequest(
			q.Get("url"), q.Get("format_id"), q.Get("title"), parseBoolish(q.Get("audio_only")),
		), nil
	}

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.ExtractionRequest{}, err
	}
	return domain.NewExtractionRequest(req.URL, req.FormatID, req.Title, bool(req.AudioOnly)), nil
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDownloadRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	artifact, err := s.svc.Fetch(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.deliver(w, r, artifact, req)
}

// deliver streams an artifact, mapping failures to an error response
// only while no bytes have been sent.
func (s *Server) deliver(w http.ResponseWriter, r *http.Request, artifact *domain.Artifact, req domain.ExtractionRequest) {
	written, err := stream.Deliver(r.Context(), w, artifact, req)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		// Client disconnected; nobody left to report to.
		logging.Debugf("delivery cancelled after %d bytes: %s", written, req.URL)
		return
	}
	if written > 0 {
		// Headers are committed; the failure is terminal for this
		// response and can only be logged.
		logging.Errorf("delivery failed mid-stream after %d bytes: %v", written, err)
		return
	}
	w.Header().Del("Content-Disposition")
	w.Header().Del("Content-Length")
	s.writeDomainError(w, r, err)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDownloadRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	job, err := s.svc.CreateJob(req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.pool.Enqueue(job.ID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusAccepted, createJobResponse{
		JobID:       job.ID,
		DownloadURL: "/api/stream/" + job.ID,
		StatusURL:   "/api/status/" + job.ID,
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.Job(mux.Vars(r)["jobID"])
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, jobToResponse(job))
}

func (s *Server) handleJobStream(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.Job(mux.Vars(r)["jobID"])
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	switch {
	case job.Deliverable():
		s.deliver(w, r, job.Artifact, job.Request)
	case job.Status == domain.StatusFailed:
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: job.Error})
	default:
		s.writeJSON(w, http.StatusConflict, jobToResponse(job))
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 20, 100)
	entries, err := s.svc.RecentHistory(r.Context(), limit)
	if err != nil {
		logging.Errorf("history query: %v", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"downloads": entries})
}

// writeDomainError maps pipeline errors to HTTP responses.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var xerr *domain.ExtractionError
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		s.writeError(w, http.StatusBadRequest, "invalid URL")
	case errors.Is(err, domain.ErrJobNotFound):
		s.writeError(w, http.StatusNotFound, "Job not found")
	case errors.Is(err, domain.ErrQueueFull):
		s.writeError(w, http.StatusServiceUnavailable, "too many pending downloads, try again later")
	case errors.As(err, &xerr):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: xerr.Message(), Details: xerr.Detail})
	case errors.Is(err, domain.ErrArtifactNotFound):
		s.writeError(w, http.StatusInternalServerError, "the download finished but no file was produced")
	case errors.Is(err, stream.ErrDeliveryRead):
		s.writeError(w, http.StatusInternalServerError, "the downloaded file could not be read")
	case errors.Is(err, context.Canceled):
		// No response: the client is gone.
	default:
		logging.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
