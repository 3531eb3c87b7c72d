package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root indicators.
const (
	SystemDir  = ".wasi"
	ConfigFile = "wasi.yaml"
)

// FindRoot looks upwards from startDir for a project root.
// Indicators are: a .wasi directory or a wasi.yaml file.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, SystemDir) || hasFile(dir, ConfigFile) {
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

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
