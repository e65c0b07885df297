package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user abandons a prompt.
var ErrCancelled = fmt.Errorf("prompt cancelled")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#AD8EE6"})

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#00FF00"})

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#AD8EE6"})

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#00FF00"})

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)

// selectModel is an arrow-key list picker.
type selectModel struct {
	title     string
	options   []string
	cursor    int
	confirmed bool
	cancelled bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("? "+m.title) + "\n\n")
	for i, opt := range m.options {
		cursor, style := "  ", unselectedStyle
		if i == m.cursor {
			cursor, style = cursorStyle.Render("❯ "), selectedStyle
		}
		b.WriteString(cursor + style.Render(opt) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("  ↑ ↓ to navigate • enter to select • esc to cancel"))
	return b.String()
}

// Select shows an arrow-key picker and returns the chosen option.
func Select(title string, options []string) (string, error) {
	model, err := tea.NewProgram(selectModel{title: title, options: options}).Run()
	if err != nil {
		return "", err
	}
	m := model.(selectModel)
	if !m.confirmed || m.cancelled {
		return "", ErrCancelled
	}
	return m.options[m.cursor], nil
}

// multiSelectModel is a checkbox picker.
type multiSelectModel struct {
	title     string
	options   []string
	cursor    int
	picked    map[int]bool
	confirmed bool
	cancelled bool
}

func (m multiSelectModel) Init() tea.Cmd { return nil }

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case " ", "x":
			m.picked[m.cursor] = !m.picked[m.cursor]
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m multiSelectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("? "+m.title) + "\n\n")
	for i, opt := range m.options {
		cursor, style, box := "  ", unselectedStyle, "○"
		if i == m.cursor {
			cursor, style = cursorStyle.Render("❯ "), selectedStyle
		}
		if m.picked[i] {
			box = markStyle.Render("●")
		}
		b.WriteString(cursor + box + " " + style.Render(opt) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("  space to toggle • enter to confirm • esc to cancel"))
	return b.String()
}

// MultiSelect shows a checkbox picker and returns the chosen options.
// Cancelling returns ErrCancelled; confirming nothing returns nil.
func MultiSelect(title string, options []string) ([]string, error) {
	model, err := tea.NewProgram(multiSelectModel{
		title:   title,
		options: options,
		picked:  make(map[int]bool),
	}).Run()
	if err != nil {
		return nil, err
	}
	m := model.(multiSelectModel)
	if !m.confirmed || m.cancelled {
		return nil, ErrCancelled
	}
	var out []string
	for i, opt := range m.options {
		if m.picked[i] {
			out = append(out, opt)
		}
	}
	return out, nil
}

// confirmModel is a left/right yes-no toggle.
type confirmModel struct {
	question  string
	yes       bool
	confirmed bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "left", "h", "y", "Y":
			m.yes = true
		case "right", "l", "n", "N":
			m.yes = false
		case "tab":
			m.yes = !m.yes
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("? "+m.question) + "\n\n")
	yesCur, noCur := "  ", "  "
	yesStyle, noStyle := unselectedStyle, unselectedStyle
	if m.yes {
		yesCur, yesStyle = cursorStyle.Render("❯ "), selectedStyle
	} else {
		noCur, noStyle = cursorStyle.Render("❯ "), selectedStyle
	}
	b.WriteString(yesCur + yesStyle.Render("Yes") + "    " + noCur + noStyle.Render("No") + "\n")
	b.WriteString("\n" + dimStyle.Render("  ← → to select • enter to confirm"))
	return b.String()
}

// Confirm shows a yes/no toggle. Cancelling returns the default.
func Confirm(question string, defaultYes bool) bool {
	model, err := tea.NewProgram(confirmModel{question: question, yes: defaultYes}).Run()
	if err != nil {
		return defaultYes
	}
	m := model.(confirmModel)
	if !m.confirmed || m.cancelled {
		return defaultYes
	}
	return m.yes
}

// textModel is a single-line input.
type textModel struct {
	title      string
	defaultVal string
	input      textinput.Model
	confirmed  bool
	cancelled  bool
}

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("? "+m.title) + "\n\n")
	b.WriteString("  " + m.input.View() + "\n")
	if m.defaultVal != "" && m.input.Value() == "" {
		b.WriteString(dimStyle.Render("  press enter to use: "+m.defaultVal) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("  enter to confirm • esc to cancel"))
	return b.String()
}

// Input shows a single-line text prompt. Empty input falls back to
// defaultVal.
func Input(title, placeholder, defaultVal string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40
	model, err := tea.NewProgram(textModel{title: title, defaultVal: defaultVal, input: ti}).Run()
	if err != nil {
		return "", err
	}
	m := model.(textModel)
	if !m.confirmed || m.cancelled {
		return "", ErrCancelled
	}
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		value = m.defaultVal
	}
	return value, nil
}
