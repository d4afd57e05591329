package ytdlp

import (
	"errors"
	"testing"

	"github.com/souravslg/Downfiles/internal/domain"
)

func TestClassifyReason(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   domain.FailureReason
	}{
		{
			"drm",
			"ERROR: [youtube] abc: This video is DRM protected",
			domain.ReasonDRMProtected,
		},
		{
			"drm wins over sign-in wording",
			"ERROR: This DRM protected video requires you to sign in",
			domain.ReasonDRMProtected,
		},
		{
			"private video",
			"ERROR: [youtube] abc: Private video. Sign in if you've been granted access",
			domain.ReasonPrivateOrSignIn,
		},
		{
			"sign in to confirm",
			"ERROR: Sign in to confirm you're not a bot",
			domain.ReasonPrivateOrSignIn,
		},
		{
			"members only",
			"ERROR: Join this channel to get access to members-only content",
			domain.ReasonPrivateOrSignIn,
		},
		{
			"region",
			"ERROR: The uploader has not made this video available in your country",
			domain.ReasonRegionRestricted,
		},
		{
			"geo restriction",
			"ERROR: This video is geo-restricted",
			domain.ReasonRegionRestricted,
		},
		{
			"format unavailable",
			"ERROR: Requested format is not available. Use --list-formats",
			domain.ReasonFormatUnavailable,
		},
		{
			"no video formats",
			"ERROR: No video formats found!",
			domain.ReasonFormatUnavailable,
		},
		{
			"timeout",
			"ERROR: Unable to download webpage: The read operation timed out",
			domain.ReasonTimeout,
		},
		{
			"unclassified",
			"ERROR: Unsupported URL: https://example.com",
			domain.ReasonUnclassified,
		},
		{
			"empty",
			"",
			domain.ReasonUnclassified,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyReason(tt.stderr); got != tt.want {
				t.Errorf("classifyReason() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	err := classify(1, "ERROR: This video is DRM protected")

	var xerr *domain.ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("classify() = %T, want *domain.ExtractionError", err)
	}
	if xerr.Reason != domain.ReasonDRMProtected {
		t.Errorf("Reason = %v, want DRM", xerr.Reason)
	}
	if xerr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", xerr.ExitCode)
	}
	if xerr.Detail == "" {
		t.Error("Detail is empty")
	}
}
