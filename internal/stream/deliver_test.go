package stream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/souravslg/Downfiles/internal/domain"
)

func writeArtifact(t *testing.T, content string) *domain.Artifact {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "downfiles-abc123.mp4")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return &domain.Artifact{Path: path, Dir: dir, ID: "abc123"}
}

func videoRequest(title string) domain.ExtractionRequest {
	return domain.NewExtractionRequest("https://example.com/v", "auto", title, false)
}

func TestDeliver_Success(t *testing.T) {
	artifact := writeArtifact(t, "media bytes")
	rec := httptest.NewRecorder()

	written, err := Deliver(context.Background(), rec, artifact, videoRequest("My Video"))
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if written != int64(len("media bytes")) {
		t.Errorf("written = %d, want %d", written, len("media bytes"))
	}
	if got := rec.Body.String(); got != "media bytes" {
		t.Errorf("body = %q, want %q", got, "media bytes")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q, want video/mp4", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd == "" {
		t.Error("Content-Disposition not set")
	}

	// The artifact must be gone after delivery.
	if _, err := os.Stat(artifact.Path); !os.IsNotExist(err) {
		t.Errorf("artifact still present after delivery: %v", err)
	}
}

func TestDeliver_CleanupIsIdempotent(t *testing.T) {
	artifact := writeArtifact(t, "x")
	rec := httptest.NewRecorder()

	if _, err := Deliver(context.Background(), rec, artifact, videoRequest("t")); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	// Delivery already removed the artifact; another Remove is a no-op.
	if err := artifact.Remove(); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestDeliver_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	artifact := &domain.Artifact{Path: filepath.Join(dir, "downfiles-gone.mp4"), Dir: dir, ID: "gone"}
	rec := httptest.NewRecorder()

	written, err := Deliver(context.Background(), rec, artifact, videoRequest("t"))
	if !errors.Is(err, ErrDeliveryRead) {
		t.Errorf("error = %v, want ErrDeliveryRead", err)
	}
	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}
}

func TestDeliver_CancelledBeforeFirstByte(t *testing.T) {
	artifact := writeArtifact(t, "payload")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	written, err := Deliver(ctx, rec, artifact, videoRequest("t"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}
	// Cleanup must run on the cancel path too.
	if _, err := os.Stat(artifact.Path); !os.IsNotExist(err) {
		t.Errorf("artifact still present after cancel: %v", err)
	}
}

// brokenWriter fails every write, simulating a client that vanished
// between the headers and the body.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }
func (w *brokenWriter) WriteHeader(int)           {}

func TestDeliver_WriteFailureStillCleansUp(t *testing.T) {
	artifact := writeArtifact(t, "payload")

	_, err := Deliver(context.Background(), &brokenWriter{}, artifact, videoRequest("t"))
	if err == nil {
		t.Fatal("Deliver() expected error")
	}
	if _, err := os.Stat(artifact.Path); !os.IsNotExist(err) {
		t.Errorf("artifact still present after write failure: %v", err)
	}
}

func TestDeliver_AudioContentType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "downfiles-a1.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	artifact := &domain.Artifact{Path: path, Dir: dir, ID: "a1"}
	req := domain.NewExtractionRequest("https://example.com/v", "auto", "song", true)

	rec := httptest.NewRecorder()
	if _, err := Deliver(context.Background(), rec, artifact, req); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("Content-Type = %q, want audio/mpeg", ct)
	}
}
