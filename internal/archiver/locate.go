package archiver

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrToolNotFound indicates that no archiving executable could be found.
var ErrToolNotFound = errors.New("archiving tool not found")

// toolNames are looked up on PATH in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var toolNames = []string{"7z", "7zz", "7za"}

// locator resolves the archiver path; its hooks are replaced in tests.
type locator struct {
	goos     string
	lookPath func(file string) (string, error)
	exists   func(path string) bool
}

// Locate returns the archiver executable to run.
// An explicit path is used as given. Otherwise the first 7-Zip binary on PATH
// wins, then the platform's usual install location.
func Locate(explicit string) (string, error) {
	l := &locator{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		exists:   fileExists,
	}

	return l.locate(explicit)
}

func (l *locator) locate(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	for _, name := range toolNames {
		if path, err := l.lookPath(name); err == nil {
			return path, nil
		}
	}

	for _, path := range installLocations(l.goos) {
		if l.exists(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("looked for %v on PATH and in %v: %w", toolNames, installLocations(l.goos), ErrToolNotFound)
}

// installLocations lists where 7-Zip installers put the binary on each platform.
func installLocations(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Program Files\7-Zip\7z.exe`,
			`C:\Program Files (x86)\7-Zip\7z.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/7zz",
			"/usr/local/bin/7zz",
		}
	default:
		return []string{
			"/usr/bin/7z",
			"/usr/lib/p7zip/7z",
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
