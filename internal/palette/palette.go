// Package palette maps the clrs.cc color names used in pulse configuration
// onto lipgloss styles for the active terminal color profile.
package palette

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Name is a color from the clrs.cc palette
type Name string

const (
	Navy    Name = "Navy"
	Blue    Name = "Blue"
	Aqua    Name = "Aqua"
	Teal    Name = "Teal"
	Olive   Name = "Olive"
	Green   Name = "Green"
	Lime    Name = "Lime"
	Yellow  Name = "Yellow"
	Orange  Name = "Orange"
	Red     Name = "Red"
	Maroon  Name = "Maroon"
	Fuchsia Name = "Fuchsia"
	Purple  Name = "Purple"
	Black   Name = "Black"
	Gray    Name = "Gray"
	Silver  Name = "Silver"
	White   Name = "White"
	Magenta Name = "Magenta"
)

type swatch struct {
	hex  string
	ansi string // ANSI-16 equivalent for terminals without truecolor
}

var swatches = map[Name]swatch{
	Navy:    {"#001f3f", "0"},
	Blue:    {"#0074d9", "4"},
	Aqua:    {"#7fdbff", "6"},
	Teal:    {"#39cccc", "6"},
	Olive:   {"#3d9970", "2"},
	Green:   {"#2ecc40", "2"},
	Lime:    {"#01ff70", "2"},
	Yellow:  {"#ffdc00", "3"},
	Orange:  {"#ff851b", "3"},
	Red:     {"#ff4136", "1"},
	Maroon:  {"#85144b", "1"},
	Fuchsia: {"#f012be", "5"},
	Purple:  {"#b10dc9", "5"},
	Black:   {"#111111", "0"},
	Gray:    {"#aaaaaa", "7"},
	Silver:  {"#dddddd", "7"},
	White:   {"#ffffff", "7"},
	Magenta: {"#ff00ff", "5"},
}

// Parse validates a color name. Names are case-sensitive, as written in the
// configuration file.
func Parse(s string) (Name, error) {
	n := Name(s)
	if _, ok := swatches[n]; !ok {
		return "", fmt.Errorf("unknown color: %s", s)
	}
	return n, nil
}

// Hex returns the truecolor value, e.g. "#0074d9".
func (n Name) Hex() string {
	return swatches[n].hex
}

// Color returns the lipgloss color for n, degrading to the ANSI-16
// equivalent on non-truecolor profiles.
func (n Name) Color() lipgloss.TerminalColor {
	s, ok := swatches[n]
	if !ok {
		s = swatches[White]
	}
	return lipgloss.CompleteColor{TrueColor: s.hex, ANSI256: s.hex, ANSI: s.ansi}
}

// Colors names the color of each prompt segment.
type Colors struct {
	User Name
	Host Name
	Dir  Name
	Repo Name
}

// Palette holds the styles applied to every rendered segment.
type Palette struct {
	User      lipgloss.Style
	Host      lipgloss.Style
	Dir       lipgloss.Style
	Repo      lipgloss.Style
	Separator lipgloss.Style
}

// New builds a Palette for an explicit color profile. The prompt is usually
// captured by the shell through a pipe, so the profile cannot be detected
// from the output writer.
func New(c Colors, profile termenv.Profile) Palette {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	style := func(n Name) lipgloss.Style {
		return r.NewStyle().Foreground(n.Color())
	}

	return Palette{
		User:      style(c.User),
		Host:      style(c.Host),
		Dir:       style(c.Dir),
		Repo:      style(c.Repo),
		Separator: style(White),
	}
}

// Plain returns a Palette that emits no escape sequences.
func Plain() Palette {
	return New(Colors{User: White, Host: White, Dir: White, Repo: White}, termenv.Ascii)
}

// DetectProfile chooses the color profile from the environment:
// NO_COLOR disables color, COLORTERM=truecolor|24bit enables RGB, anything
// else falls back to the 16 ANSI colors.
func DetectProfile() termenv.Profile {
	return profileFromEnv(os.Getenv)
}

func profileFromEnv(getenv func(string) string) termenv.Profile {
	if getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	}
	return termenv.ANSI
}
