package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#00FF00"})

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC6600", Dark: "#FFAA00"})

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#00AAFF"})

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#AD8EE6"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})
)

// Reporter renders supervisor progress to the terminal. It satisfies
// both the supervisor's Reporter and Prompter interfaces.
type Reporter struct{}

func (Reporter) Info(msg string) {
	fmt.Println(infoStyle.Render("ℹ") + " " + msg)
}

func (Reporter) Success(msg string) {
	fmt.Println(successStyle.Render("✔") + " " + msg)
}

func (Reporter) Warn(msg string) {
	fmt.Println(warnStyle.Render("⚠") + " " + msg)
}

func (Reporter) Confirm(question string, defaultYes bool) bool {
	return Confirm(question, defaultYes)
}

// Header prints a bold section header.
func Header(text string) {
	fmt.Println(headerStyle.Render("  " + text))
}

// Field prints an aligned label/value pair.
func Field(label, value string) {
	fmt.Println("  " + labelStyle.Render(label+":") + " " + valueStyle.Render(value))
}

// Divider prints a horizontal rule.
func Divider() {
	fmt.Println(dimStyle.Render("  " + strings.Repeat("─", 48)))
}
