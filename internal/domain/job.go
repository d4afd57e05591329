package domain

import "time"

// JobStatus represents the lifecycle state of an asynchronous job.
// Transitions only move forward: queued -> processing -> done | failed.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusDone       JobStatus = "done"
	StatusFailed     JobStatus = "failed"
)

// Terminal returns true for states a job never leaves.
func (s JobStatus) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// rank orders statuses so transitions can be rejected when they would
// move a job backwards.
func (s JobStatus) rank() int {
	switch s {
	case StatusQueued:
		return 0
	case StatusProcessing:
		return 1
	case StatusDone, StatusFailed:
		return 2
	}
	return -1
}

// CanTransition reports whether a job may move from s to next.
func (s JobStatus) CanTransition(next JobStatus) bool {
	return !s.Terminal() && next.rank() > s.rank()
}

// Job is one tracked asynchronous download.
type Job struct {
	ID        string
	Request   ExtractionRequest
	Status    JobStatus
	Progress  int
	Error     string
	Artifact  *Artifact
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deliverable returns true when the job's artifact can be streamed.
func (j *Job) Deliverable() bool {
	return j.Status == StatusDone && j.Artifact != nil
}
