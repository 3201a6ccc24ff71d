// Package prompt is the layout engine: it turns gathered prompt fields into
// the literal text printed by the shell, choosing the most detailed
// repository rendering that fits the terminal.
package prompt

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// widthCondition is independent of the process locale so that a string
// always measures the same.
var widthCondition = runewidth.NewCondition()

// VisualWidth returns the number of terminal columns s occupies once ANSI
// styling is removed. Wide runes count as two columns.
func VisualWidth(s string) int {
	return widthCondition.StringWidth(ansi.Strip(s))
}
