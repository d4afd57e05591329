package ytdlp

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/souravslg/Downfiles/internal/domain"
)

// containerRank orders candidate containers when the extractor renamed
// the output during merging. Lower ranks win.
func containerRank(name string) int {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4":
		return 0
	case ".mkv":
		return 1
	case ".webm":
		return 2
	default:
		return 3
	}
}

// LocateArtifact resolves the file an extraction actually produced. The
// expected path wins when it exists; otherwise the temp directory is
// scanned for filenames embedding the correlation id, ranked by
// container preference with lexical order breaking ties. No match means
// the extractor reported success but produced nothing discoverable.
func LocateArtifact(dir, expected, correlationID string) (string, error) {
	if _, err := os.Stat(expected); err == nil {
		return expected, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", domain.ErrArtifactNotFound
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), correlationID) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return "", domain.ErrArtifactNotFound
	}

	sort.Slice(names, func(i, j int) bool {
		ri, rj := containerRank(names[i]), containerRank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return filepath.Join(dir, names[0]), nil
}
