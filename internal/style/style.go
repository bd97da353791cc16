// Package style provides terminal styling for polyform output using Lipgloss.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by Setup.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	colorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMute = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorInfo = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	// Success style for canonical results (green)
	Success = lipgloss.NewStyle().Foreground(colorPass).Bold(true)

	// Warning style for skipped input (yellow)
	Warning = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)

	// Error style for failures (red)
	Error = lipgloss.NewStyle().Foreground(colorFail).Bold(true)

	// Info style for intermediate products (blue)
	Info = lipgloss.NewStyle().Foreground(colorInfo)

	// Dim style for prompts and labels (gray)
	Dim = lipgloss.NewStyle().Foreground(colorMute)

	Bold = lipgloss.NewStyle().Bold(true)
)

// Setup applies a color mode to the global lipgloss renderer and reports
// whether color ended up enabled.
func Setup(mode string) bool {
	enabled := ShouldUseColor(mode)
	if enabled {
		lipgloss.SetColorProfile(termenv.TrueColor)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return enabled
}

// ShouldUseColor resolves a color mode. In auto mode NO_COLOR disables color,
// CLICOLOR_FORCE enables it, and otherwise color follows whether stdout is a
// terminal.
func ShouldUseColor(mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if _, ok := os.LookupEnv("CLICOLOR_FORCE"); ok {
		return true
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
