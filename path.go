package bookarmor

import (
	"os"
	"path/filepath"
	"strings"
)

// mustAbsFilepath calls filepath.Abs and asserts that it is successful
func mustAbsFilepath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}

// expandTilde resolves a leading "~/" against the user's home directory so
// configuration values like ~/Desktop/Ebooks work regardless of how the
// shell passed them on.
func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
