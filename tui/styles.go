package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	styleSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleLabel    = lipgloss.NewStyle().Bold(true)
	styleFocused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleOption   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleHelp     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleButton   = lipgloss.NewStyle().Bold(true).Padding(0, 2).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13"))
	styleButtonFocused = styleButton.Background(lipgloss.Color("14"))
	styleButtonDim     = lipgloss.NewStyle().Padding(0, 2).
				Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("1")).Padding(0, 1)
	styleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 1)
)
