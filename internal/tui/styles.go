package tui

import "github.com/charmbracelet/lipgloss"

// Styles.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	priceStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	sparkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	voiceOnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(24)
	cardSelectedStyle = cardStyle.BorderForeground(lipgloss.Color("75"))
)

var iconGlyphs = map[string]string{
	"robot":      "🤖",
	"bell":       "🔔",
	"globe":      "🌐",
	"cogs":       "⚙",
	"network":    "🕸",
	"chart-line": "📈",
}
