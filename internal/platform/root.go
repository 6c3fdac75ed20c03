package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirName is the directory holding the notes of a workspace.
const DataDirName = ".scribe"

// FindRoot recursively looks upwards for a workspace root indicator.
// Indicators are: a .scribe directory or a scribe.yaml file.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, DataDirName) || hasFile(dir, "scribe.yaml") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// ResolveDataDir returns the data directory of the workspace containing startDir,
// or startDir/.scribe when no workspace exists yet.
func ResolveDataDir(startDir string) (string, error) {
	root, err := FindRoot(startDir)
	if err != nil {
		abs, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return "", absErr
		}
		return filepath.Join(abs, DataDirName), nil
	}
	return filepath.Join(root, DataDirName), nil
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
