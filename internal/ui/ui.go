// Package ui centralizes terminal output styling so commands render
// consistently and degrade to plain text when not attached to a terminal.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, s string) string {
	if !IsTerminal() {
		return s
	}
	return style.Render(s)
}

// RenderPass styles a success marker or message.
func RenderPass(s string) string { return render(passStyle, s) }

// RenderFail styles a failure marker or message.
func RenderFail(s string) string { return render(failStyle, s) }

// RenderWarn styles a warning.
func RenderWarn(s string) string { return render(warnStyle, s) }

// RenderAccent styles a heading or highlighted token.
func RenderAccent(s string) string { return render(accentStyle, s) }

// RenderMuted styles secondary detail text.
func RenderMuted(s string) string { return render(mutedStyle, s) }
