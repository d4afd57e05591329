package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/logging"
	"github.com/souravslg/Downfiles/internal/metrics"
)

// artifactPrefix namespaces this service's files in the temp directory.
const artifactPrefix = "downfiles-"

// Fetch downloads one rendition into the temp directory and resolves the
// artifact that was actually produced. Partial files are swept on every
// failure path; the returned artifact's removal is the caller's duty.
func (e *Extractor) Fetch(ctx context.Context, spec domain.FetchSpec) (*domain.Artifact, error) {
	if err := os.MkdirAll(e.opts.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	base := artifactPrefix + spec.CorrelationID
	template := filepath.Join(e.opts.TempDir, base+".%(ext)s")

	args := []string{
		"-f", spec.Selector,
		"--no-playlist",
		"--newline",
		"--socket-timeout", seconds(e.opts.FetchTimeout),
		"-o", template,
	}
	if spec.AudioOnly {
		args = append(args, "--extract-audio", "--audio-format", "mp3", "--audio-quality", "0")
	}
	if e.tool.FFmpeg != "" {
		args = append(args, "--ffmpeg-location", e.tool.FFmpeg)
		if !spec.AudioOnly {
			args = append(args, "--merge-output-format", "mp4")
		}
	}
	if e.opts.CookiesFile != "" {
		args = append(args, "--cookies", e.opts.CookiesFile)
	}
	args = append(args, spec.URL)

	logging.Debugf("fetch %s: yt-dlp -f %q", spec.CorrelationID, spec.Selector)

	progress := newProgressParser(spec.OnProgress)
	errTail := newTailBuffer(maxDiagnostics)

	code, err := e.run(ctx, args, progress.Write, errTail.Write)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("fetch", "cancelled").Inc()
		_ = domain.SweepPartials(e.opts.TempDir, spec.CorrelationID)
		return nil, err
	}
	if code != 0 {
		metrics.ExtractionsTotal.WithLabelValues("fetch", "error").Inc()
		_ = domain.SweepPartials(e.opts.TempDir, spec.CorrelationID)
		return nil, classify(code, errTail.String())
	}

	ext := "mp4"
	if spec.AudioOnly {
		ext = "mp3"
	}
	expected := filepath.Join(e.opts.TempDir, base+"."+ext)

	path, err := LocateArtifact(e.opts.TempDir, expected, spec.CorrelationID)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("fetch", "missing").Inc()
		return nil, err
	}

	metrics.ExtractionsTotal.WithLabelValues("fetch", "ok").Inc()
	return &domain.Artifact{
		Path: path,
		Dir:  e.opts.TempDir,
		ID:   spec.CorrelationID,
	}, nil
}
