// Package registry tracks asynchronous jobs in memory. The registry is
// created at service start, injected into its users, and never
// persisted; entries are kept for the process lifetime.
package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/souravslg/Downfiles/internal/domain"
)

// Registry is a mutex-guarded in-memory job store.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{jobs: make(map[string]*domain.Job)}
}

// Create allocates a job in the queued state with a fresh opaque id.
func (r *Registry) Create(req domain.ExtractionRequest) *domain.Job {
	now := time.Now()
	job := &domain.Job{
		ID:        uuid.NewString(),
		Request:   req,
		Status:    domain.StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()

	return snapshot(job)
}

// Get returns a copy of the job, or domain.ErrJobNotFound.
func (r *Registry) Get(id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return snapshot(job), nil
}

// SetStatus advances the job's status. Backward transitions and
// transitions out of a terminal state are rejected.
func (r *Registry) SetStatus(id string, status domain.JobStatus) error {
	return r.update(id, func(job *domain.Job) {
		if job.Status.CanTransition(status) {
			job.Status = status
		}
	})
}

// SetProgress records download progress. Progress never decreases and is
// clamped to 0..100.
func (r *Registry) SetProgress(id string, pct int) error {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return r.update(id, func(job *domain.Job) {
		if pct > job.Progress {
			job.Progress = pct
		}
	})
}

// SetError records the failure message shown to pollers.
func (r *Registry) SetError(id string, msg string) error {
	return r.update(id, func(job *domain.Job) {
		job.Error = msg
	})
}

// SetArtifact attaches the resolved artifact to the job.
func (r *Registry) SetArtifact(id string, a *domain.Artifact) error {
	return r.update(id, func(job *domain.Job) {
		job.Artifact = a
	})
}

// Len returns the number of tracked jobs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

func (r *Registry) update(id string, fn func(*domain.Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	fn(job)
	job.UpdatedAt = time.Now()
	return nil
}

// snapshot copies a job so callers never share the registry's mutable
// state. The artifact pointer is shared deliberately: its removal must
// be exactly-once across all holders.
func snapshot(job *domain.Job) *domain.Job {
	c := *job
	return &c
}
