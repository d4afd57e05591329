// Package ytdlp drives the external yt-dlp extractor: probing a URL for
// its renditions, fetching one into a temp directory, classifying
// extractor failures, and resolving the produced artifact.
package ytdlp

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/souravslg/Downfiles/internal/logging"
)

// Tool locates the external binaries. Detection runs once at startup;
// the result is read-only afterwards.
type Tool struct {
	// YtDlp is the argv prefix for the extractor, e.g. {"yt-dlp"} or
	// {"python3", "-m", "yt_dlp"}.
	YtDlp []string
	// FFmpeg is the transcoder binary, empty when unavailable.
	FFmpeg string
}

// CanMerge reports whether separate video and audio streams can be
// merged into one container.
func (t Tool) CanMerge() bool {
	return t.FFmpeg != ""
}

// Detect finds yt-dlp and ffmpeg. Non-empty overrides skip the probe for
// that binary. A missing transcoder is not an error, it only disables
// merged downloads; a missing extractor is fatal.
func Detect(ytdlpOverride, ffmpegOverride string) (Tool, error) {
	tool := Tool{}

	switch {
	case ytdlpOverride != "":
		tool.YtDlp = []string{ytdlpOverride}
	case runs("yt-dlp", "--version"):
		tool.YtDlp = []string{"yt-dlp"}
	case runs("python3", "-m", "yt_dlp", "--version"):
		tool.YtDlp = []string{"python3", "-m", "yt_dlp"}
	default:
		return tool, fmt.Errorf("yt-dlp not found; install it with: pip install yt-dlp")
	}

	switch {
	case ffmpegOverride != "":
		if _, err := os.Stat(ffmpegOverride); err != nil {
			return tool, fmt.Errorf("ffmpeg not found at %s: %w", ffmpegOverride, err)
		}
		tool.FFmpeg = ffmpegOverride
	case runs("ffmpeg", "-version"):
		tool.FFmpeg = "ffmpeg"
	default:
		logging.Warnf("ffmpeg not found; downloads fall back to pre-merged streams (720p max)")
	}

	return tool, nil
}

func runs(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
