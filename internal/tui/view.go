package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/juliankahlert/pulse/internal/prompt"
)

// Minimal styles for the preview
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Margin(0, 0, 1, 0)

	actionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Margin(1, 0, 0, 0)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			Margin(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	rulerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	fitsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	overflowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// View renders the entire preview
func (m Model) View() string {
	if !m.ready {
		return "Measuring terminal..."
	}

	res := m.Compose()

	sections := []string{
		m.renderHeader(res),
		res.Text,
		m.renderRuler(),
	}
	if res.InRepo {
		sections = append(sections, "", m.renderTierTable(res.Tier))
	}
	if m.lastError != "" {
		sections = append(sections, "", errorStyle.Render("Error: "+m.lastError))
	}
	sections = append(sections, m.renderActions())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, content, helpStyle.Render(helpText))
	}
	return content
}

// renderHeader summarizes width, mode and the chosen tier
func (m Model) renderHeader(res prompt.Result) string {
	source := "terminal"
	if m.Simulated() {
		source = "simulated"
	}

	layout := "no repository"
	if res.InRepo {
		layout = "tier " + res.Tier.String()
	}

	return headerStyle.Render(fmt.Sprintf("pulse preview - width %d (%s), mode %s, %s",
		m.EffectiveWidth(), source, m.mode, layout))
}

// renderRuler draws a line as wide as the layout width, clipped to the
// real terminal.
func (m Model) renderRuler() string {
	n := m.EffectiveWidth()
	if m.width > 0 && n > m.width {
		n = m.width
	}
	return rulerStyle.Render(strings.Repeat("─", n))
}

// renderTierTable lists every tier's width against the layout width
func (m Model) renderTierTable(selected prompt.Tier) string {
	repo := *m.current.Repo
	width := m.EffectiveWidth()

	lines := make([]string, 0, len(prompt.Tiers))
	for _, t := range prompt.Tiers {
		w := prompt.VisualWidth(prompt.RenderTier(t, m.current.Identity, repo, m.pal))

		marker := "  "
		name := fmt.Sprintf("%-5s", t.String())
		if t == selected {
			marker = "▸ "
			name = selectedStyle.Render(name)
		}

		status := fitsStyle.Render("fits")
		if w > width {
			status = overflowStyle.Render("overflows")
		}
		lines = append(lines, fmt.Sprintf("%s%s %4d cols  %s", marker, name, w, status))
	}
	return strings.Join(lines, "\n")
}

// renderActions shows the key bindings
func (m Model) renderActions() string {
	return actionsStyle.Render("←/→ width  shift+←/→ ±10  0 terminal width  m mode  r refresh  ? help  q quit")
}

const helpText = `pulse preview

Shows the prompt exactly as the shell would print it at the current width.
The width follows the terminal until ←/→ sets a simulated width.

  ←/→, h/l            narrower / wider by 1 column
  shift+←/→, H/L      narrower / wider by 10 columns
  0, backspace        follow the terminal width again
  m                   toggle DualLine / Inline
  r                   re-read user, host, directory and repository
  q, esc              quit

Config files are watched; saved color changes apply immediately.`
