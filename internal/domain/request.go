package domain

// AutoFormat is the sentinel rendition id meaning "let the selector choose".
const AutoFormat = "auto"

// ExtractionRequest describes one media fetch. Immutable once constructed.
type ExtractionRequest struct {
	URL       string
	FormatID  string
	AudioOnly bool
	Title     string
}

// NewExtractionRequest normalizes raw request parameters.
func NewExtractionRequest(url, formatID, title string, audioOnly bool) ExtractionRequest {
	if formatID == "" {
		formatID = AutoFormat
	}
	return ExtractionRequest{
		URL:       url,
		FormatID:  formatID,
		AudioOnly: audioOnly,
		Title:     title,
	}
}

// Ext returns the container extension the response will advertise.
func (r ExtractionRequest) Ext() string {
	if r.AudioOnly {
		return "mp3"
	}
	return "mp4"
}

// ContentType returns the MIME type for the delivered artifact.
func (r ExtractionRequest) ContentType() string {
	if r.AudioOnly {
		return "audio/mpeg"
	}
	return "video/mp4"
}

// FormatCandidate is one fetchable rendition reported by a probe.
type FormatCandidate struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	Filesize   int64   `json:"filesize,omitempty"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	FPS        float64 `json:"fps,omitempty"`
	TBR        float64 `json:"tbr,omitempty"`
	Note       string  `json:"note"`
}

// ProbeInfo is the metadata returned for a source URL.
type ProbeInfo struct {
	Title      string            `json:"title"`
	Thumbnail  string            `json:"thumbnail"`
	Duration   float64           `json:"duration"`
	Uploader   string            `json:"uploader"`
	Platform   string            `json:"platform"`
	WebpageURL string            `json:"webpage_url"`
	Formats    []FormatCandidate `json:"formats"`
	BestFormat string            `json:"best_format"`
}
