package types

import "fmt"

// DisplayMode selects between a one-line and a two-line prompt
type DisplayMode string

const (
	ModeDualLine DisplayMode = "DualLine" // Context line, then exit code and glyph
	ModeInline   DisplayMode = "Inline"   // Everything on one line
)

// ParseDisplayMode converts a configuration value into a DisplayMode.
// The empty string yields the default (DualLine).
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case "":
		return ModeDualLine, nil
	case ModeDualLine, ModeInline:
		return DisplayMode(s), nil
	default:
		return "", fmt.Errorf("unknown display mode %q (expected %q or %q)", s, ModeDualLine, ModeInline)
	}
}

// RepoContext is the repository information shown on the first line when
// the working directory is inside a work tree.
type RepoContext struct {
	Name     string
	Branch   string
	Segments []string // Directories between the work-tree root and cwd, root first
}

// RepoInfo is what repository discovery yields for a directory.
type RepoInfo struct {
	Name    string // Base name of the work-tree root
	Branch  string // Short branch name, short hash when detached, or "unknown"
	Email   string // Configured user.email, empty when unset
	WorkDir string // Absolute work-tree root
	Prefix  string // Path of cwd relative to WorkDir, "" at the root
}

// Fields holds everything the layout engine needs for one render.
// All OS lookups happen before a Fields value exists.
type Fields struct {
	User      string
	Host      string
	Identity  string // git user.email when configured, otherwise User
	Dir       string // "~", "~/sub/dir" or an absolute path
	Superuser bool
	ExitCode  string
	Repo      *RepoContext // nil outside a repository
}

// InRepo reports whether repository context is available.
func (f Fields) InRepo() bool {
	return f.Repo != nil
}
