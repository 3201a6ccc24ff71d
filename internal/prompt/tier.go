package prompt

import (
	"strings"

	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/types"
)

// Tier is a verbosity level for the repository line
type Tier int

const (
	TierFull  Tier = iota // identity, repo, branch, up to three path segments
	TierMini              // branch collapsed to an ellipsis
	TierMicro             // identity user part dropped
	TierNano              // no branch section, last path segment only
)

// Tiers lists every tier from most to least verbose.
var Tiers = []Tier{TierFull, TierMini, TierMicro, TierNano}

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "Full"
	case TierMini:
		return "Mini"
	case TierMicro:
		return "Micro"
	case TierNano:
		return "Nano"
	default:
		return "Unknown"
	}
}

// RenderTier produces the styled repository line for tier t. The result is
// exactly what gets printed, so it is also what gets measured.
func RenderTier(t Tier, identity string, repo types.RepoContext, pal palette.Palette) string {
	var b strings.Builder

	b.WriteString(renderIdentity(identity, pal, t == TierFull || t == TierMini))
	b.WriteString(pal.Separator.Render(": ["))
	b.WriteString(pal.Repo.Render(repo.Name))

	switch t {
	case TierFull:
		b.WriteString(pal.Separator.Render(" : "))
		b.WriteString(pal.Repo.Render(repo.Branch))
		b.WriteString(pal.Separator.Render("] "))
	case TierMini, TierMicro:
		b.WriteString(pal.Separator.Render(" : "))
		b.WriteString(pal.Repo.Render(Ellipsis))
		b.WriteString(pal.Separator.Render("] "))
	default:
		b.WriteString(pal.Separator.Render("] "))
		b.WriteString(renderNanoPath(repo.Segments, pal))
		return b.String()
	}

	if path := TruncateRepoPath(repo.Segments); path != "" {
		b.WriteString(pal.Dir.Render(path))
	}
	return b.String()
}

// renderIdentity styles an email-like identity as user@host. Without
// withUser only the "@host" part remains. Identities that do not contain
// exactly one "@" are printed whole.
func renderIdentity(identity string, pal palette.Palette, withUser bool) string {
	if identity == "" {
		return ""
	}

	user, host, ok := strings.Cut(identity, "@")
	if !ok || strings.Contains(host, "@") {
		return pal.User.Render(identity)
	}

	var b strings.Builder
	if withUser {
		b.WriteString(pal.User.Render(user))
	}
	b.WriteString(pal.Separator.Render("@"))
	b.WriteString(pal.Host.Render(host))
	return b.String()
}

// renderNanoPath keeps only the last segment.
func renderNanoPath(segments []string, pal palette.Palette) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return pal.Dir.Render(segments[0])
	default:
		return pal.Separator.Render(Ellipsis+Connector) + pal.Dir.Render(segments[len(segments)-1])
	}
}
