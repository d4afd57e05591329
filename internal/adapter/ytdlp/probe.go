package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/metrics"
)

// probePayload mirrors the subset of yt-dlp's --dump-json output the
// service cares about.
type probePayload struct {
	Title        string        `json:"title"`
	Thumbnail    string        `json:"thumbnail"`
	Duration     float64       `json:"duration"`
	Uploader     string        `json:"uploader"`
	Channel      string        `json:"channel"`
	ExtractorKey string        `json:"extractor_key"`
	WebpageURL   string        `json:"webpage_url"`
	FormatID     string        `json:"format_id"`
	Formats      []probeFormat `json:"formats"`
}

type probeFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Resolution     string  `json:"resolution"`
	Height         int     `json:"height"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	FPS            float64 `json:"fps"`
	TBR            float64 `json:"tbr"`
	FormatNote     string  `json:"format_note"`
}

// Probe resolves a source URL to its metadata and a deduplicated,
// resolution-descending rendition list.
func (e *Extractor) Probe(ctx context.Context, url string) (*domain.ProbeInfo, error) {
	args := []string{
		"--dump-json",
		"--no-playlist",
		"--socket-timeout", seconds(e.opts.ProbeTimeout),
	}
	if e.opts.CookiesFile != "" {
		args = append(args, "--cookies", e.opts.CookiesFile)
	}
	args = append(args, url)

	var out bytes.Buffer
	errTail := newTailBuffer(maxDiagnostics)

	code, err := e.run(ctx, args,
		func(chunk []byte) { out.Write(chunk) },
		func(chunk []byte) { errTail.Write(chunk) },
	)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("probe", "cancelled").Inc()
		return nil, err
	}
	if code != 0 {
		metrics.ExtractionsTotal.WithLabelValues("probe", "error").Inc()
		return nil, classify(code, errTail.String())
	}

	var payload probePayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		metrics.ExtractionsTotal.WithLabelValues("probe", "error").Inc()
		return nil, fmt.Errorf("parse probe output: %w", err)
	}

	metrics.ExtractionsTotal.WithLabelValues("probe", "ok").Inc()

	uploader := payload.Uploader
	if uploader == "" {
		uploader = payload.Channel
	}

	return &domain.ProbeInfo{
		Title:      payload.Title,
		Thumbnail:  payload.Thumbnail,
		Duration:   payload.Duration,
		Uploader:   uploader,
		Platform:   strings.ToLower(payload.ExtractorKey),
		WebpageURL: payload.WebpageURL,
		Formats:    candidates(payload.Formats),
		BestFormat: payload.FormatID,
	}, nil
}

// candidates filters out storyboard-style entries, sorts what remains by
// resolution descending and keeps one entry per resolution label.
func candidates(formats []probeFormat) []domain.FormatCandidate {
	list := make([]domain.FormatCandidate, 0, len(formats))
	for _, f := range formats {
		if f.VCodec == "none" && f.ACodec == "none" {
			continue
		}
		size := f.Filesize
		if size == 0 {
			size = f.FilesizeApprox
		}
		list = append(list, domain.FormatCandidate{
			FormatID:   f.FormatID,
			Ext:        f.Ext,
			Resolution: resolutionLabel(f),
			Filesize:   size,
			VCodec:     f.VCodec,
			ACodec:     f.ACodec,
			FPS:        f.FPS,
			TBR:        f.TBR,
			Note:       f.FormatNote,
		})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return resolutionOrder(list[i].Resolution) > resolutionOrder(list[j].Resolution)
	})

	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, c := range list {
		if seen[c.Resolution] {
			continue
		}
		seen[c.Resolution] = true
		out = append(out, c)
	}
	return out
}

func resolutionLabel(f probeFormat) string {
	if f.Resolution != "" && f.Resolution != "audio only" {
		return f.Resolution
	}
	if f.Height > 0 {
		return fmt.Sprintf("%dp", f.Height)
	}
	return "audio"
}

// resolutionOrder extracts the leading number of a resolution label so
// "1080p" sorts above "720p" and plain audio entries sink to the bottom.
func resolutionOrder(label string) int {
	i := 0
	for i < len(label) && label[i] >= '0' && label[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, _ := strconv.Atoi(label[:i])
	return n
}
