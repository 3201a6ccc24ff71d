package prompt

import (
	"strings"

	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/types"
)

const (
	// DefaultWidth is used when the terminal size cannot be determined.
	DefaultWidth = 120

	dualLinePrefix = "└─ "
)

// Result is a composed prompt and how it was laid out.
type Result struct {
	Text   string
	Tier   Tier // Meaningful only when InRepo is true
	InRepo bool
}

// Compose builds the complete prompt for the given terminal width.
func Compose(width int, mode types.DisplayMode, f types.Fields, pal palette.Palette) Result {
	var res Result

	var first string
	if f.Repo != nil {
		res.InRepo = true
		res.Tier, first = Layout(width, f.Identity, *f.Repo, pal)
	} else {
		first = RenderDirLine(f.User, f.Host, f.Dir, pal)
	}

	glyph := Glyph(f.Superuser)
	if mode == types.ModeInline {
		res.Text = first + " " + glyph + " "
		return res
	}

	exitCode := f.ExitCode
	if exitCode == "" {
		exitCode = "0"
	}
	res.Text = first + "\n" + dualLinePrefix + exitCode + " " + glyph + " "
	return res
}

// Render returns the prompt text. It is the entry point used by the shell.
func Render(width int, mode types.DisplayMode, f types.Fields, pal palette.Palette) string {
	return Compose(width, mode, f, pal).Text
}

// Glyph is the trailing prompt character.
func Glyph(superuser bool) string {
	if superuser {
		return "#"
	}
	return "$"
}

// RenderDirLine is the first line outside a repository:
// user@host:<root> <segments>.
func RenderDirLine(user, host, dir string, pal palette.Palette) string {
	root, segments := SplitDir(dir)

	var b strings.Builder
	b.WriteString(pal.User.Render(user))
	b.WriteString(pal.Separator.Render("@"))
	b.WriteString(pal.Host.Render(host))
	b.WriteString(pal.Separator.Render(":"))
	b.WriteString(pal.Dir.Render(TruncateDir(root, segments)))
	return b.String()
}

// SplitDir separates a display directory into its root symbol ("~" for the
// home directory and below, "/" otherwise) and the remaining segments.
func SplitDir(dir string) (string, []string) {
	switch {
	case dir == "~":
		return "~", nil
	case strings.HasPrefix(dir, "~/"):
		return "~", SplitPath(dir[2:])
	default:
		return "/", SplitPath(dir)
	}
}
