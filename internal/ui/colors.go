package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	dimStyle     lipgloss.Style
	yearStyle    lipgloss.Style
	pathStyle    lipgloss.Style
)

func init() {
	initStyles()
}

func initStyles() {
	if !IsTerminal() {
		// Plain styles for non-terminal
		successStyle = lipgloss.NewStyle()
		errorStyle = lipgloss.NewStyle()
		warningStyle = lipgloss.NewStyle()
		dimStyle = lipgloss.NewStyle()
		yearStyle = lipgloss.NewStyle()
		pathStyle = lipgloss.NewStyle()
		return
	}

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	yearStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
}

// Success styles success text
func Success(text string) string {
	return successStyle.Render(text)
}

// Error styles error text
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning styles warning text
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Dim styles secondary text
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Year styles a gallery year heading
func Year(text string) string {
	return yearStyle.Render(text)
}

// Path styles a file path
func Path(text string) string {
	return pathStyle.Render(text)
}

// WarningMsg writes a warning line
func WarningMsg(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, Warning("⚠")+" "+msg)
}

// SuccessMsg writes a success line
func SuccessMsg(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, Success("✓")+" "+msg)
}
