package prompt

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/types"
)

var sampleRepo = types.RepoContext{
	Name:     "pulse",
	Branch:   "feature/adaptive-layout",
	Segments: []string{"internal", "prompt", "testdata", "golden"},
}

func tierWidths(identity string, repo types.RepoContext, pal palette.Palette) map[Tier]int {
	widths := make(map[Tier]int, len(Tiers))
	for _, tier := range Tiers {
		widths[tier] = VisualWidth(RenderTier(tier, identity, repo, pal))
	}
	return widths
}

func TestSelect_Boundaries(t *testing.T) {
	pal := colored()
	identity := "dev@example.org"
	w := tierWidths(identity, sampleRepo, pal)

	tests := []struct {
		name  string
		width int
		want  Tier
	}{
		{"wide terminal", 500, TierFull},
		{"exactly full", w[TierFull], TierFull},
		{"one short of full", w[TierFull] - 1, TierMini},
		{"exactly mini", w[TierMini], TierMini},
		{"one short of mini", w[TierMini] - 1, TierMicro},
		{"exactly micro", w[TierMicro], TierMicro},
		{"one short of micro", w[TierMicro] - 1, TierNano},
		{"exactly nano", w[TierNano], TierNano},
		{"below nano", w[TierNano] - 1, TierNano},
		{"zero width", 0, TierNano},
		{"negative width", -5, TierNano},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.width, identity, sampleRepo, pal); got != tt.want {
				t.Errorf("Select(%d) = %s, want %s (widths %v)", tt.width, got, tt.want, w)
			}
		})
	}
}

func TestSelect_MostVerboseFittingTier(t *testing.T) {
	pal := colored()
	identity := "dev@example.org"
	w := tierWidths(identity, sampleRepo, pal)

	for width := 0; width <= w[TierFull]+2; width++ {
		want := TierNano
		for _, tier := range Tiers {
			if w[tier] <= width {
				want = tier
				break
			}
		}
		if got := Select(width, identity, sampleRepo, pal); got != want {
			t.Errorf("Select(%d) = %s, want %s", width, got, want)
		}
	}
}

func TestLayout_ReturnsSelectedRendering(t *testing.T) {
	pal := colored()
	for _, width := range []int{0, 30, 45, 60, 200} {
		tier, line := Layout(width, "dev@example.org", sampleRepo, pal)
		if want := RenderTier(tier, "dev@example.org", sampleRepo, pal); line != want {
			t.Errorf("Layout(%d) text differs from RenderTier(%s)", width, tier)
		}
		if tier != TierNano && VisualWidth(line) > width {
			t.Errorf("Layout(%d) chose %s with width %d", width, tier, VisualWidth(line))
		}
	}
}

func TestTierWidths_Monotonic(t *testing.T) {
	w := tierWidths("dev@example.org", sampleRepo, colored())
	for i := 1; i < len(Tiers); i++ {
		if w[Tiers[i-1]] < w[Tiers[i]] {
			t.Errorf("%s width %d < %s width %d", Tiers[i-1], w[Tiers[i-1]], Tiers[i], w[Tiers[i]])
		}
	}
}

func printable(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsFunc(s, unicode.IsControl)
}

func FuzzTierWidths_Monotonic(f *testing.F) {
	f.Add("git@email", "repo", "branch", "dir1/dir2/dir3")
	f.Add("alice", "pulse", "main", "")
	f.Add("a@b@c", "日本語", "機能/ブランチ", "a/b/c/d/e")
	f.Add("", "r", "x", "one")

	pal := colored()
	f.Fuzz(func(t *testing.T, identity, name, branch, path string) {
		if !printable(identity) || !printable(name) || !printable(branch) || !printable(path) {
			t.Skip()
		}
		// A branch narrower than the ellipsis cannot shrink when collapsed.
		if VisualWidth(branch) < VisualWidth(Ellipsis) {
			t.Skip()
		}

		repo := types.RepoContext{Name: name, Branch: branch, Segments: SplitPath(path)}
		w := tierWidths(identity, repo, pal)
		for i := 1; i < len(Tiers); i++ {
			if w[Tiers[i-1]] < w[Tiers[i]] {
				t.Errorf("%s width %d < %s width %d for %+v", Tiers[i-1], w[Tiers[i-1]], Tiers[i], w[Tiers[i]], repo)
			}
		}
	})
}
