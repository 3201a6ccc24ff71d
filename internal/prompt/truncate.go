package prompt

import "strings"

const (
	// Connector joins path segments.
	Connector = " › "
	// Ellipsis marks elided content.
	Ellipsis = "…"

	// KeepSegments is how many trailing path segments survive truncation.
	KeepSegments = 3
)

// Truncate renders segments under the ellipsis policy. At most keep trailing
// segments are shown; earlier ones collapse into a single ellipsis. A
// non-empty root is always printed first, separated by a space.
func Truncate(root string, segments []string, keep int) string {
	if len(segments) == 0 {
		return root
	}

	var path string
	if keep >= 0 && len(segments) > keep {
		path = Ellipsis + " " + strings.Join(segments[len(segments)-keep:], Connector)
	} else {
		path = strings.Join(segments, Connector)
	}

	if root == "" {
		return path
	}
	return root + " " + path
}

// TruncateRepoPath renders the path from the repository root to cwd.
func TruncateRepoPath(segments []string) string {
	return Truncate("", segments, KeepSegments)
}

// TruncateDir renders a working directory below root ("~" or "/").
func TruncateDir(root string, segments []string) string {
	return Truncate(root, segments, KeepSegments)
}

// SplitPath breaks a slash-separated path into its non-empty components.
func SplitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}
