// Package worker runs queued download jobs with bounded concurrency.
// Admission happens at enqueue time: a full queue rejects the job
// instead of letting requests pile up behind the extractor.
package worker

import (
	"context"
	"sync"

	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/logging"
	"github.com/souravslg/Downfiles/internal/metrics"
)

// Pool consumes job ids from a bounded queue and executes them.
type Pool struct {
	svc     *domain.DownloadService
	queue   chan string
	workers int
}

// New creates a pool with the given concurrency and queue capacity.
func New(svc *domain.DownloadService, workers, queueSize int) *Pool {
	return &Pool{
		svc:     svc,
		queue:   make(chan string, queueSize),
		workers: workers,
	}
}

// Enqueue admits a job for processing. It never blocks; a full queue
// returns domain.ErrQueueFull.
func (p *Pool) Enqueue(jobID string) error {
	select {
	case p.queue <- jobID:
		metrics.JobQueueDepth.Inc()
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// Run starts the workers and blocks until the context is cancelled and
// all in-flight jobs have finished. Cancelling the context also
// terminates any extractor process a worker is supervising.
func (p *Pool) Run(ctx context.Context) {
	logging.Infof("worker pool started (%d workers, queue %d)", p.workers, cap(p.queue))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.loop(ctx)
		}()
	}
	wg.Wait()
	logging.Infof("worker pool stopped")
}

func (p *Pool) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case jobID := <-p.queue:
			metrics.JobQueueDepth.Dec()
			p.svc.RunJob(ctx, jobID)
		}
	}
}
