package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wcagdemo/internal/ui"
	"github.com/muurk/wcagdemo/internal/version"
)

// Application branding constants
const (
	AppName   = "WCAG KEYBOARD DEMO"
	GitHubURL = "github.com/muurk/wcagdemo"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72  // Minimum supported terminal width
	MaxContentWidth  = 140 // Maximum content width before capping
	SideBySideWidth  = 110 // Examples render side by side from this width
)

// Color palette, shared with the CLI output
var (
	PrimaryColor   = ui.PrimaryColor
	SecondaryColor = ui.SuccessColor
	WarningColor   = ui.WarningColor
	ErrorColor     = ui.ErrorColor
	TextColor      = ui.TextColor
	SubtleColor    = ui.MutedColor
	BorderColor    = ui.PrimaryColor
	HighlightColor = ui.SuccessColor
)

// Common styles
var (
	// Title style
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Menu item style (selected)
	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	// Focused control: the element holding keyboard focus
	FocusedStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Disabled control
	DisabledStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Strikethrough(true)

	// Boundary box drawn around trapped content
	BoundaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	// Dialog box for widget dialogs
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(WarningColor).
			Padding(0, 1)

	// Log lines under the playground
	LogStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Status messages
	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render("  " + text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps every screen: header, content, a help
// footer and an outer border filling the terminal.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight < 10 {
		terminalHeight = 10
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Foreground(SubtleColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		contentStyle.Render(content),
		footerStyle.Render(footerText),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// contentWidth is the usable width inside the application container.
func contentWidth(terminalWidth int) int {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalWidth > MaxContentWidth {
		terminalWidth = MaxContentWidth
	}
	return terminalWidth - 6
}

// contentHeight is the usable height between header and footer.
func contentHeight(terminalHeight int) int {
	h := terminalHeight - 8
	if h < 5 {
		return 5
	}
	return h
}
