package ytdlp

import (
	"strings"

	"github.com/souravslg/Downfiles/internal/domain"
)

// maxDiagnostics bounds the stderr tail kept for error reporting.
const maxDiagnostics = 4096

// classify turns a nonzero extractor exit into a typed error based on
// the diagnostic text.
func classify(exitCode int, stderr string) error {
	return domain.NewExtractionError(classifyReason(stderr), exitCode, stderr)
}

// classifyReason matches known yt-dlp failure phrases. Checks run in
// specificity order; DRM wins over the generic sign-in wording some DRM
// messages also contain.
func classifyReason(stderr string) domain.FailureReason {
	s := strings.ToLower(stderr)
	switch {
	case contains(s, "drm"):
		return domain.ReasonDRMProtected
	case contains(s, "private video", "sign in", "login required", "members-only", "this video is available to this channel's members"):
		return domain.ReasonPrivateOrSignIn
	case contains(s, "not available in your country", "geo restriction", "geo-restricted", "blocked it in your country"):
		return domain.ReasonRegionRestricted
	case contains(s, "requested format is not available", "no video formats found"):
		return domain.ReasonFormatUnavailable
	case contains(s, "timed out", "timeout"):
		return domain.ReasonTimeout
	default:
		return domain.ReasonUnclassified
	}
}

func contains(s string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
