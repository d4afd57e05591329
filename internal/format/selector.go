// Package format builds yt-dlp format selector expressions as ordered
// fallback chains. Construction is pure: the same inputs always produce
// the same expression, and every chain ends with a clause that matches
// any downloadable stream.
package format

import "strings"

// Universal is the terminal clause of every expression. It can only fail
// when the source has nothing downloadable at all.
const Universal = "best"

// Clause selects one rendition, optionally paired with a separate audio
// stream that the transcoder merges.
type Clause struct {
	Video string
	Audio string
}

// String serializes the clause in yt-dlp syntax.
func (c Clause) String() string {
	if c.Audio != "" {
		return c.Video + "+" + c.Audio
	}
	return c.Video
}

// Merged reports whether the clause requires the transcoder.
func (c Clause) Merged() bool {
	return c.Audio != ""
}

// Expression is an ordered fallback chain of clauses.
type Expression []Clause

// String joins the chain with "/" for the extractor's -f argument.
func (e Expression) String() string {
	parts := make([]string, len(e))
	for i, c := range e {
		parts[i] = c.String()
	}
	return strings.Join(parts, "/")
}

// Final returns the last clause of the chain.
func (e Expression) Final() Clause {
	return e[len(e)-1]
}

// Resolve builds the fallback chain for a requested rendition id (or
// "auto"), the media kind, and the transcoder capability. Rendition ids
// are not stable across sessions, so every concrete-id chain carries
// generic safety nets behind it.
func Resolve(requestedID string, audioOnly, canMerge bool) Expression {
	if audioOnly {
		// No merging needed for audio, capability is irrelevant.
		return Expression{
			{Video: "bestaudio[ext=m4a]"},
			{Video: "bestaudio[ext=webm]"},
			{Video: "bestaudio"},
		}
	}

	if requestedID != "" && requestedID != "auto" {
		if canMerge {
			return Expression{
				{Video: requestedID, Audio: "bestaudio[ext=m4a]"},
				{Video: requestedID, Audio: "bestaudio"},
				{Video: requestedID},
				{Video: "bestvideo[ext=mp4]", Audio: "bestaudio[ext=m4a]"},
				{Video: "bestvideo", Audio: "bestaudio"},
				{Video: "best[vcodec!=none]"},
				{Video: Universal},
			}
		}
		return Expression{
			{Video: requestedID},
			{Video: "best[ext=mp4][vcodec!=none]"},
			{Video: "best[vcodec!=none]"},
			{Video: Universal},
		}
	}

	if canMerge {
		return Expression{
			{Video: "bestvideo[ext=mp4]", Audio: "bestaudio[ext=m4a]"},
			{Video: "bestvideo", Audio: "bestaudio"},
			{Video: "best[ext=mp4]"},
			{Video: Universal},
		}
	}
	// Without the transcoder only pre-merged streams are usable; cap the
	// resolution rather than hand the client an unmergeable pair.
	return Expression{
		{Video: "best[ext=mp4]"},
		{Video: "best[height<=720]"},
		{Video: "best[vcodec!=none]"},
		{Video: Universal},
	}
}
