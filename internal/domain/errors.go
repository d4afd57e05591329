package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrJobNotFound      = errors.New("job not found")
	ErrJobNotReady      = errors.New("job artifact not ready")
	ErrQueueFull        = errors.New("job queue full")
	ErrArtifactNotFound = errors.New("extractor succeeded but produced no artifact")
)

// FailureReason classifies extractor failures from diagnostic output.
type FailureReason string

const (
	ReasonDRMProtected      FailureReason = "drm_protected"
	ReasonPrivateOrSignIn   FailureReason = "private_or_sign_in"
	ReasonRegionRestricted  FailureReason = "region_restricted"
	ReasonFormatUnavailable FailureReason = "format_unavailable"
	ReasonTimeout           FailureReason = "timeout"
	ReasonUnclassified      FailureReason = "unclassified"
)

// maxDetailBytes caps the raw diagnostics carried with an ExtractionError.
const maxDetailBytes = 2000

// ExtractionError is a classified nonzero extractor exit.
type ExtractionError struct {
	Reason   FailureReason
	ExitCode int
	Detail   string
}

// NewExtractionError builds an ExtractionError, truncating the raw
// diagnostics to a debuggable tail.
func NewExtractionError(reason FailureReason, exitCode int, detail string) *ExtractionError {
	if len(detail) > maxDetailBytes {
		detail = detail[len(detail)-maxDetailBytes:]
	}
	return &ExtractionError{Reason: reason, ExitCode: exitCode, Detail: detail}
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed (%s, exit %d)", e.Reason, e.ExitCode)
}

// Message returns a human-readable explanation for the client.
func (e *ExtractionError) Message() string {
	switch e.Reason {
	case ReasonDRMProtected:
		return "This media is DRM protected and cannot be downloaded."
	case ReasonPrivateOrSignIn:
		return "This media is private or requires signing in."
	case ReasonRegionRestricted:
		return "This media is not available in the server's region."
	case ReasonFormatUnavailable:
		return "The requested format is not available for this media."
	case ReasonTimeout:
		return "The source took too long to respond. Please try again."
	default:
		return "Could not fetch the media. Make sure the URL is valid."
	}
}
