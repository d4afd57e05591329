package ytdlp

import (
	"strconv"
	"time"
)

// Options configures an Extractor.
type Options struct {
	// TempDir is where fetch artifacts are written.
	TempDir string
	// CookiesFile is optional credential material passed through to the
	// extractor. Empty means anonymous runs.
	CookiesFile string
	// ProbeTimeout and FetchTimeout bound the extractor's socket reads.
	ProbeTimeout time.Duration
	FetchTimeout time.Duration
}

// Extractor implements domain.Extractor on top of the yt-dlp binary.
type Extractor struct {
	tool Tool
	opts Options
}

// New creates an Extractor for a detected tool.
func New(tool Tool, opts Options) *Extractor {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 30 * time.Second
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 60 * time.Second
	}
	return &Extractor{tool: tool, opts: opts}
}

// CanMerge reports transcoder availability.
func (e *Extractor) CanMerge() bool {
	return e.tool.CanMerge()
}

// TempDir returns the artifact directory.
func (e *Extractor) TempDir() string {
	return e.opts.TempDir
}

func seconds(d time.Duration) string {
	s := int(d / time.Second)
	if s < 1 {
		s = 1
	}
	return strconv.Itoa(s)
}
