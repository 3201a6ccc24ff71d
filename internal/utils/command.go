package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// BinaryName is the name pulse is installed under.
const BinaryName = "pulse"

// GetPulseCommand returns the command a shell should run to produce the
// prompt. A binary reachable through PATH is referenced by name so upgrades
// that move it keep working; otherwise the absolute executable path is used.
func GetPulseCommand() string {
	return resolveCommand(os.Executable, exec.LookPath)
}

func resolveCommand(executable func() (string, error), lookPath func(string) (string, error)) string {
	self, err := executable()
	if err != nil {
		return BinaryName
	}

	// 'go run' builds into a temporary directory that disappears
	if strings.Contains(self, "go-build") {
		return BinaryName
	}

	if found, err := lookPath(BinaryName); err == nil && sameFile(found, self) {
		return BinaryName
	}

	if filepath.Base(self) != BinaryName {
		// Running as a test binary or under another name
		if _, err := lookPath(BinaryName); err == nil {
			return BinaryName
		}
	}
	return self
}

func sameFile(a, b string) bool {
	if ra, err := filepath.EvalSymlinks(a); err == nil {
		a = ra
	}
	if rb, err := filepath.EvalSymlinks(b); err == nil {
		b = rb
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// ShellQuote wraps s in single quotes for POSIX shells.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
