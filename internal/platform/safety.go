package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultStorePath is used when no store path is given.
const DefaultStorePath = ".wasi/knowledge.json"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	// "go test" binaries end in .test
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveStorePath determines the actual knowledge file path based on safety rules.
// If forceTemp is true, the path is re-rooted into a temporary directory
// to avoid overwriting the user's real knowledge base during development.
func ResolveStorePath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = DefaultStorePath
	}
	if !forceTemp {
		return userPath
	}

	// A path already inside the system temp directory (e.g. t.TempDir()) is trusted.
	cleanUserPath := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), cleanUserPath)
	if err == nil && filepath.IsAbs(cleanUserPath) && !strings.HasPrefix(rel, "..") {
		return cleanUserPath
	}

	subName := filepath.Base(cleanUserPath)
	if subName == "." || subName == string(os.PathSeparator) {
		subName = filepath.Base(DefaultStorePath)
	}
	return filepath.Join(os.TempDir(), "wasi-dev", subName)
}
