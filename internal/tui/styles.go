// Package tui provides the full-screen terminal front-end for aptlite.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - matches the CLI colors
var (
	ColorPrimary   = lipgloss.Color("#D70751") // Debian red
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F3F4F6") // Light gray
	ColorBg        = lipgloss.Color("#1F2937") // Dark gray
	ColorBgAlt     = lipgloss.Color("#374151") // Slightly lighter
)

// Styles contains all the lipgloss styles used in the TUI
type Styles struct {
	Header    lipgloss.Style
	Footer    lipgloss.Style
	StatusBar lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonBusy    lipgloss.Style

	// List items
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	Checkbox         lipgloss.Style
	PackageName      lipgloss.Style
	PackageDesc      lipgloss.Style

	// Description and log panes
	Description lipgloss.Style
	Placeholder lipgloss.Style
	LogLine     lipgloss.Style
	LogDone     lipgloss.Style
	LogError    lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Spinner lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogButton lipgloss.Style
}

// DefaultStyles returns the default style configuration
func DefaultStyles() *Styles {
	s := &Styles{}

	s.Header = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1).
		Bold(true)

	s.Footer = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorBgAlt).
		Padding(0, 1)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBgAlt).
		Padding(0, 1)

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted)

	s.PanelFocused = s.Panel.
		BorderForeground(ColorPrimary)

	s.PanelTitle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	s.Button = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBgAlt).
		Padding(0, 1).
		MarginRight(1)

	s.ButtonFocused = s.Button.
		Background(ColorPrimary).
		Bold(true)

	s.ButtonBusy = s.Button.
		Foreground(ColorMuted)

	s.ListItem = lipgloss.NewStyle().
		Foreground(ColorText)

	s.ListItemSelected = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	s.Checkbox = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	s.PackageName = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	s.PackageDesc = lipgloss.NewStyle().
		Foreground(ColorMuted)

	s.Description = lipgloss.NewStyle().
		Foreground(ColorText)

	s.Placeholder = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	s.LogLine = lipgloss.NewStyle().
		Foreground(ColorText)

	s.LogDone = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	s.LogError = lipgloss.NewStyle().
		Foreground(ColorError)

	s.Success = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	s.Warning = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	s.Error = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	s.Info = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	s.InputPrompt = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	s.HelpKey = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	s.HelpDesc = lipgloss.NewStyle().
		Foreground(ColorMuted)

	s.Spinner = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	s.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(60)

	s.DialogTitle = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true).
		MarginBottom(1)

	s.DialogButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 2)

	return s
}

// NoticeStyle returns the title style for a notice of the given kind.
func (s *Styles) NoticeStyle(kind NoticeKind) lipgloss.Style {
	switch kind {
	case NoticeSuccess:
		return s.Success
	case NoticeWarning:
		return s.Warning
	case NoticeError:
		return s.Error
	default:
		return s.Info
	}
}
