package domain

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Artifact is the temporary file produced by one extraction. It is owned
// by whichever component delivers it; Remove is safe to call from every
// exit path.
type Artifact struct {
	// Path is the resolved on-disk location.
	Path string
	// Dir is the temp directory the extractor wrote into.
	Dir string
	// ID is the correlation id embedded in the artifact's filename.
	ID string

	removeOnce sync.Once
	removeErr  error
}

// Size returns the artifact's size in bytes, or 0 if it cannot be read.
func (a *Artifact) Size() int64 {
	info, err := os.Stat(a.Path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Remove deletes the artifact and any partial files sharing its
// correlation id. Exactly one invocation does work; repeated calls and
// already-missing files are no-ops.
func (a *Artifact) Remove() error {
	a.removeOnce.Do(func() {
		a.removeErr = removeByID(a.Dir, a.ID)
	})
	return a.removeErr
}

// removeByID deletes every file in dir whose name embeds id. Used both
// for artifact cleanup and for sweeping partials after a failed fetch.
func removeByID(dir, id string) error {
	if id == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), id) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SweepPartials removes leftover files for a correlation id after a
// failed extraction.
func SweepPartials(dir, id string) error {
	return removeByID(dir, id)
}
