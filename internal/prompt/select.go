package prompt

import (
	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/types"
)

// Layout renders tiers from most to least verbose and returns the first one
// whose visual width fits in width columns, together with its text. Nano is
// returned when nothing fits.
func Layout(width int, identity string, repo types.RepoContext, pal palette.Palette) (Tier, string) {
	var line string
	for _, t := range Tiers {
		line = RenderTier(t, identity, repo, pal)
		if VisualWidth(line) <= width {
			return t, line
		}
	}
	// The loop ends on Nano, so line already holds its rendering.
	return TierNano, line
}

// Select returns the tier Layout would choose.
func Select(width int, identity string, repo types.RepoContext, pal palette.Palette) Tier {
	t, _ := Layout(width, identity, repo, pal)
	return t
}
