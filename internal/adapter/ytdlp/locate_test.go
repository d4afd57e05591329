package ytdlp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/souravslg/Downfiles/internal/domain"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocateArtifact_ExpectedWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "downfiles-abc.mp4")
	touch(t, dir, "downfiles-abc.mkv")

	expected := filepath.Join(dir, "downfiles-abc.mp4")
	got, err := LocateArtifact(dir, expected, "abc")
	if err != nil {
		t.Fatalf("LocateArtifact() error = %v", err)
	}
	if got != expected {
		t.Errorf("LocateArtifact() = %q, want %q", got, expected)
	}
}

func TestLocateArtifact_ContainerPreference(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"mp4 beats mkv", []string{"downfiles-abc.mkv", "downfiles-abc.mp4"}, "downfiles-abc.mp4"},
		{"mkv beats webm", []string{"downfiles-abc.webm", "downfiles-abc.mkv"}, "downfiles-abc.mkv"},
		{"webm beats others", []string{"downfiles-abc.opus", "downfiles-abc.webm"}, "downfiles-abc.webm"},
		{"lexical tiebreak", []string{"downfiles-abc.f299.mp4", "downfiles-abc.f137.mp4"}, "downfiles-abc.f137.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, dir, f)
			}
			got, err := LocateArtifact(dir, filepath.Join(dir, "missing.mp4"), "abc")
			if err != nil {
				t.Fatalf("LocateArtifact() error = %v", err)
			}
			if got != filepath.Join(dir, tt.want) {
				t.Errorf("LocateArtifact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocateArtifact_IgnoresOtherRequests(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "downfiles-other.mp4")

	_, err := LocateArtifact(dir, filepath.Join(dir, "missing.mp4"), "abc")
	if !errors.Is(err, domain.ErrArtifactNotFound) {
		t.Errorf("LocateArtifact() error = %v, want ErrArtifactNotFound", err)
	}
}

func TestLocateArtifact_MissingDir(t *testing.T) {
	_, err := LocateArtifact("/nonexistent", "/nonexistent/x.mp4", "abc")
	if !errors.Is(err, domain.ErrArtifactNotFound) {
		t.Errorf("LocateArtifact() error = %v, want ErrArtifactNotFound", err)
	}
}

func TestContainerRank(t *testing.T) {
	if containerRank("a.MP4") != 0 {
		t.Error("rank is not case-insensitive")
	}
	if !(containerRank("a.mp4") < containerRank("a.mkv") &&
		containerRank("a.mkv") < containerRank("a.webm") &&
		containerRank("a.webm") < containerRank("a.opus")) {
		t.Error("container ranks out of order")
	}
}
