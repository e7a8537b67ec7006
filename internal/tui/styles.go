package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Status message colors
	successColor = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
	errorColor   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
	infoColor    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // Blue

	// Tabs
	activeTab   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Underline(true)
	inactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// Lists
	indexColor    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
	overdueColor  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
	returnedColor = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // Dark grey
	cursorColor   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	headingStyle  = lipgloss.NewStyle().Bold(true)

	feedbackBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// formatStatus returns a colored status message based on the status kind
func formatStatus(message string, kind statusKind) string {
	switch kind {
	case statusSuccess:
		return successColor.Render(message)
	case statusError:
		return errorColor.Render(message)
	case statusInfo:
		return infoColor.Render(message)
	default:
		return message
	}
}

func formatTab(label string, active bool) string {
	if active {
		return activeTab.Render(label)
	}
	return inactiveTab.Render(label)
}

func formatIndex(i int) string {
	return indexColor.Render(fmt.Sprintf("%d.", i))
}
