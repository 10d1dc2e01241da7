package playerbar

import "github.com/charmbracelet/lipgloss"

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var titleStyle = lipgloss.NewStyle().Bold(true)

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

var waveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
