package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	red    = lipgloss.AdaptiveColor{Light: "#FE5F86", Dark: "#FE5F86"}
	indigo = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	green  = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	blue   = lipgloss.AdaptiveColor{Light: "#1E88E5", Dark: "#42A5F5"}
	gray   = lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#BDBDBD"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(indigo).
			Bold(true)

	UserStyle = lipgloss.NewStyle().
			Foreground(blue).
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(gray)
)
