package terminal

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#6366F1")
	accent  = lipgloss.Color("#EC4899")
	muted   = lipgloss.Color("#9AA3C0")
	danger  = lipgloss.Color("#F87171")
	success = lipgloss.Color("#34D399")

	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	headingStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	successStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	priceStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	selectedStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(muted).Italic(true)

	sectionStyle = lipgloss.NewStyle().Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	activeCardStyle = cardStyle.Copy().BorderForeground(primary)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)

var difficultyColors = map[string]lipgloss.Color{
	"Beginner":     success,
	"Intermediate": lipgloss.Color("#FACC15"),
	"Advanced":     lipgloss.Color("#FB923C"),
	"Expert":       danger,
}

func difficultyBadge(level string) string {
	color, ok := difficultyColors[level]
	if !ok {
		color = muted
	}
	return lipgloss.NewStyle().Foreground(color).Render("[" + level + "]")
}
