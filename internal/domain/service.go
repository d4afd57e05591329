package domain

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"

	"github.com/souravslg/Downfiles/internal/format"
	"github.com/souravslg/Downfiles/internal/logging"
	"github.com/souravslg/Downfiles/internal/metrics"
)

// DownloadService orchestrates probing, fetching and job tracking.
type DownloadService struct {
	extractor Extractor
	registry  JobRegistry
	history   History
}

// NewDownloadService creates a new DownloadService.
func NewDownloadService(extractor Extractor, registry JobRegistry, history History) *DownloadService {
	return &DownloadService{
		extractor: extractor,
		registry:  registry,
		history:   history,
	}
}

// ValidateURL rejects missing or malformed source URLs.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return ErrInvalidURL
	}
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}

// Probe resolves a source URL to its metadata and rendition list.
func (s *DownloadService) Probe(ctx context.Context, rawURL string) (*ProbeInfo, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}
	info, err := s.extractor.Probe(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if info.Platform == "" {
		info.Platform = DetectPlatform(rawURL)
	}
	return info, nil
}

// Fetch runs the full synchronous pipeline for one request and returns
// the resolved artifact. The caller owns the artifact and must remove it.
func (s *DownloadService) Fetch(ctx context.Context, req ExtractionRequest) (*Artifact, error) {
	return s.fetch(ctx, req, nil)
}

func (s *DownloadService) fetch(ctx context.Context, req ExtractionRequest, onProgress func(int)) (*Artifact, error) {
	if err := ValidateURL(req.URL); err != nil {
		return nil, err
	}

	selector := format.Resolve(req.FormatID, req.AudioOnly, s.extractor.CanMerge())
	spec := FetchSpec{
		URL:           req.URL,
		Selector:      selector.String(),
		AudioOnly:     req.AudioOnly,
		CorrelationID: uuid.NewString(),
		OnProgress:    onProgress,
	}

	artifact, err := s.extractor.Fetch(ctx, spec)
	if err != nil {
		// A cancelled request is cleanup-only: nobody is left to tell.
		if !errors.Is(err, context.Canceled) {
			s.record(req, "failed", err.Error(), 0)
		}
		return nil, err
	}

	s.record(req, "completed", "", artifact.Size())
	return artifact, nil
}

// record appends a history entry; history failures are logged, never
// propagated into the request path.
func (s *DownloadService) record(req ExtractionRequest, outcome, errMsg string, bytes int64) {
	if s.history == nil {
		return
	}
	entry := HistoryEntry{
		URL:       req.URL,
		Title:     req.Title,
		Platform:  DetectPlatform(req.URL),
		FormatID:  req.FormatID,
		AudioOnly: req.AudioOnly,
		Outcome:   outcome,
		Error:     errMsg,
		Bytes:     bytes,
	}
	if err := s.history.Record(context.Background(), entry); err != nil {
		logging.Warnf("history record failed: %v", err)
	}
}

// CreateJob allocates a registry entry for an asynchronous request.
// The job starts queued; a worker moves it forward.
func (s *DownloadService) CreateJob(req ExtractionRequest) (*Job, error) {
	if err := ValidateURL(req.URL); err != nil {
		return nil, err
	}
	return s.registry.Create(req), nil
}

// Job returns the current state of a job.
func (s *DownloadService) Job(id string) (*Job, error) {
	return s.registry.Get(id)
}

// RunJob executes the pipeline for a previously created job. Exactly one
// worker runs a given job; registry transitions enforce forward motion.
func (s *DownloadService) RunJob(ctx context.Context, jobID string) {
	job, err := s.registry.Get(jobID)
	if err != nil {
		logging.Errorf("job %s: vanished before processing: %v", jobID, err)
		return
	}
	if err := s.registry.SetStatus(jobID, StatusProcessing); err != nil {
		logging.Errorf("job %s: claim failed: %v", jobID, err)
		return
	}

	logging.Infof("job %s: fetching %s", jobID, job.Request.URL)

	artifact, err := s.fetch(ctx, job.Request, func(pct int) {
		_ = s.registry.SetProgress(jobID, pct)
	})
	if err != nil {
		logging.Warnf("job %s: fetch failed: %v", jobID, err)
		_ = s.registry.SetError(jobID, errorMessage(err))
		_ = s.registry.SetStatus(jobID, StatusFailed)
		metrics.JobsTotal.WithLabelValues(string(StatusFailed)).Inc()
		return
	}

	_ = s.registry.SetArtifact(jobID, artifact)
	_ = s.registry.SetProgress(jobID, 100)
	_ = s.registry.SetStatus(jobID, StatusDone)
	metrics.JobsTotal.WithLabelValues(string(StatusDone)).Inc()
	logging.Infof("job %s: done (%d bytes)", jobID, artifact.Size())
}

// errorMessage maps pipeline errors to the message shown to pollers.
func errorMessage(err error) string {
	var xerr *ExtractionError
	if errors.As(err, &xerr) {
		return xerr.Message()
	}
	if errors.Is(err, context.Canceled) {
		return "The download was cancelled."
	}
	if errors.Is(err, ErrArtifactNotFound) {
		return "The download finished but no file was produced."
	}
	return err.Error()
}

// RecentHistory returns the most recent finished downloads.
func (s *DownloadService) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, limit)
}
