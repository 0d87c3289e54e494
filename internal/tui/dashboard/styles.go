package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tradeboard/internal/theme"
)

var (
	// Colors
	primaryColor = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"}
	accentColor  = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#c4b5fd"}

	// Title style
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	// Header style
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor)

	navItemStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingRight(2)

	navActiveStyle = navItemStyle.
			Foreground(primaryColor).
			Bold(true).
			Underline(true)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Table title styles on the overview page
	tableTitleStyle = lipgloss.NewStyle().
			Bold(true)

	tableTitleFocusedStyle = tableTitleStyle.
				Foreground(accentColor).
				Underline(true)

	colorModeStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Footer style
	footerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor)

	// Error banner style
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true).
				Padding(0, 1).
				BorderStyle(lipgloss.ThickBorder()).
				BorderLeft(true).
				BorderForeground(errorColor)

	filterPromptStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	// Empty state style
	emptyStateStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			PaddingTop(2).
			PaddingBottom(2)

	// Spinner style
	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)

// themeIcon marks the active palette in the header.
func themeIcon(name theme.Name) string {
	if name == theme.Dark {
		return "☾ dark"
	}
	return "☀ light"
}
