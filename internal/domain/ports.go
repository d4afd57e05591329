package domain

import (
	"context"
	"time"
)

// FetchSpec tells the extractor what to download and where.
type FetchSpec struct {
	URL           string
	Selector      string
	AudioOnly     bool
	CorrelationID string
	// OnProgress receives download percentages parsed from extractor
	// output. May be nil.
	OnProgress func(pct int)
}

// Extractor is the driven port for the external extraction tool.
type Extractor interface {
	// Probe resolves a URL to metadata and its fetchable renditions.
	Probe(ctx context.Context, url string) (*ProbeInfo, error)
	// Fetch downloads one rendition and resolves the produced artifact.
	Fetch(ctx context.Context, spec FetchSpec) (*Artifact, error)
	// CanMerge reports whether the transcoder is available for merging
	// separate video and audio streams. Determined once at startup.
	CanMerge() bool
}

// JobRegistry is the driven port for asynchronous job tracking.
type JobRegistry interface {
	Create(req ExtractionRequest) *Job
	Get(id string) (*Job, error)
	SetStatus(id string, status JobStatus) error
	SetProgress(id string, pct int) error
	SetError(id string, msg string) error
	SetArtifact(id string, a *Artifact) error
}

// HistoryEntry records one finished download for the history view.
type HistoryEntry struct {
	ID        int64
	URL       string
	Title     string
	Platform  string
	FormatID  string
	AudioOnly bool
	Outcome   string
	Error     string
	Bytes     int64
	CreatedAt time.Time
}

// History is the driven port for the persistent download history.
type History interface {
	Record(ctx context.Context, entry HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
}
