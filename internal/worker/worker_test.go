package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/registry"
)

// stubExtractor produces a real temp file per fetch so jobs reach the
// done state the same way they do in production.
type stubExtractor struct {
	dir string

	mu      sync.Mutex
	fetches int
}

func (s *stubExtractor) Probe(_ context.Context, _ string) (*domain.ProbeInfo, error) {
	return &domain.ProbeInfo{}, nil
}

func (s *stubExtractor) Fetch(_ context.Context, spec domain.FetchSpec) (*domain.Artifact, error) {
	s.mu.Lock()
	s.fetches++
	s.mu.Unlock()

	path := filepath.Join(s.dir, "downfiles-"+spec.CorrelationID+".mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		return nil, err
	}
	return &domain.Artifact{Path: path, Dir: s.dir, ID: spec.CorrelationID}, nil
}

func (s *stubExtractor) CanMerge() bool { return false }

func waitForTerminal(t *testing.T, svc *domain.DownloadService, jobID string) *domain.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := svc.Job(jobID)
		if err != nil {
			t.Fatalf("Job() error = %v", err)
		}
		if job.Status.Terminal() {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", jobID)
	return nil
}

func TestPool_ProcessesJobs(t *testing.T) {
	ext := &stubExtractor{dir: t.TempDir()}
	reg := registry.New()
	svc := domain.NewDownloadService(ext, reg, nil)
	pool := New(svc, 2, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		pool.Run(ctx)
		close(done)
	}()

	var ids []string
	for i := 0; i < 4; i++ {
		job, err := svc.CreateJob(domain.NewExtractionRequest("https://youtube.com/watch?v=a", "", "", false))
		if err != nil {
			t.Fatalf("CreateJob() error = %v", err)
		}
		if err := pool.Enqueue(job.ID); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
		ids = append(ids, job.ID)
	}

	for _, id := range ids {
		job := waitForTerminal(t, svc, id)
		if job.Status != domain.StatusDone {
			t.Errorf("job %s status = %v (error %q)", id, job.Status, job.Error)
		}
		if job.Progress != 100 {
			t.Errorf("job %s progress = %d, want 100", id, job.Progress)
		}
	}

	ext.mu.Lock()
	fetches := ext.fetches
	ext.mu.Unlock()
	if fetches != 4 {
		t.Errorf("fetches = %d, want 4", fetches)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop after cancellation")
	}
}

func TestPool_QueueFull(t *testing.T) {
	ext := &stubExtractor{dir: t.TempDir()}
	svc := domain.NewDownloadService(ext, registry.New(), nil)
	pool := New(svc, 1, 1)
	// No workers running; the queue holds exactly one id.

	if err := pool.Enqueue("a"); err != nil {
		t.Fatalf("first Enqueue() error = %v", err)
	}
	if err := pool.Enqueue("b"); !errors.Is(err, domain.ErrQueueFull) {
		t.Errorf("second Enqueue() error = %v, want ErrQueueFull", err)
	}
}
