package ytdlp

import (
	"bytes"
	"regexp"
	"strconv"
)

// progressRe matches yt-dlp's per-line progress output, e.g.
// "[download]  42.3% of 10.00MiB at 1.00MiB/s".
var progressRe = regexp.MustCompile(`\[download\]\s+(\d+(?:\.\d+)?)%`)

// progressParser accumulates stdout chunks and reports whole-line
// download percentages. Chunks may split lines arbitrarily.
type progressParser struct {
	rest  []byte
	onPct func(int)
}

func newProgressParser(onPct func(int)) *progressParser {
	return &progressParser{onPct: onPct}
}

// Write consumes one stdout chunk. The chunk is copied, not retained.
func (p *progressParser) Write(chunk []byte) {
	if p.onPct == nil {
		return
	}
	p.rest = append(p.rest, chunk...)
	for {
		idx := bytes.IndexAny(p.rest, "\r\n")
		if idx < 0 {
			break
		}
		line := p.rest[:idx]
		p.rest = p.rest[idx+1:]
		p.parseLine(line)
	}
}

func (p *progressParser) parseLine(line []byte) {
	m := progressRe.FindSubmatch(line)
	if m == nil {
		return
	}
	pct, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return
	}
	p.onPct(int(pct))
}

// tailBuffer keeps the last max bytes written to it, used to retain a
// debuggable tail of stderr without unbounded growth.
type tailBuffer struct {
	max int
	b   []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

// Write appends a chunk, discarding the oldest bytes beyond the cap.
func (t *tailBuffer) Write(chunk []byte) {
	t.b = append(t.b, chunk...)
	if len(t.b) > t.max {
		t.b = append(t.b[:0:0], t.b[len(t.b)-t.max:]...)
	}
}

func (t *tailBuffer) String() string {
	return string(t.b)
}
