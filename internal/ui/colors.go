package ui

import "github.com/charmbracelet/lipgloss"

// Colors adapt to the terminal background. Primary is the text colour,
// Red marks reminders that have gone off and Orange ones due within the
// urgent window.
var (
	Primary   = lipgloss.AdaptiveColor{Light: "#111", Dark: "#fff"}
	Secondary = lipgloss.AdaptiveColor{Light: "#666", Dark: "#888"}
	Faded     = lipgloss.AdaptiveColor{Light: "#aaa", Dark: "#555"}

	Green  = lipgloss.AdaptiveColor{Light: "#00803f", Dark: "#00a352"}
	Red    = lipgloss.AdaptiveColor{Light: "#b02410", Dark: "#c42912"}
	Yellow = lipgloss.AdaptiveColor{Light: "#9a9000", Dark: "#c4b810"}
	Orange = lipgloss.AdaptiveColor{Light: "#b06000", Dark: "#c27510"}
)
