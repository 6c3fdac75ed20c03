package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix names the staging files written next to a note collection.
// Watchers ignore files with this prefix.
const TempFilePrefix = "scribe-tmp-"

// writeFileAtomic stages data in a temp file in the collection directory and
// renames it over filename, so a concurrent reader in another process sees
// either the previous collection or the new one. An existing file keeps its
// mode; perm applies only when the file is created.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)
	if info, statErr := os.Stat(filename); statErr == nil {
		perm = info.Mode().Perm()
	}

	staged, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filepath.Base(filename), err)
	}
	stagedName := staged.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(stagedName)
		}
	}()

	_, writeErr := staged.Write(data)
	if writeErr == nil {
		writeErr = staged.Sync()
	}
	if closeErr := staged.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("failed to stage %s: %w", filepath.Base(filename), writeErr)
	}

	if err := os.Chmod(stagedName, perm); err != nil {
		return fmt.Errorf("failed to chmod staged file: %w", err)
	}
	if err := os.Rename(stagedName, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
