package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	muted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	danger = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}

	titleLargeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(1, 0)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	hintStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	userStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	systemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	fallbackStyle = lipgloss.NewStyle().
			Foreground(danger).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted)

	sendStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	statusStyle = lipgloss.NewStyle().
			Foreground(muted)
)
