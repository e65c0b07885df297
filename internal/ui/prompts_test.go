package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSelectModelNavigation(t *testing.T) {
	m := selectModel{title: "Pick one", options: []string{"a", "b", "c"}}
	next, _ := m.Update(keyRune('j'))
	next, _ = next.Update(keyRune('j'))
	next, _ = next.Update(keyRune('j')) // clamped at last option
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(selectModel)
	if !got.confirmed || got.cursor != 2 {
		t.Fatalf("confirmed=%v cursor=%d", got.confirmed, got.cursor)
	}
}

func TestSelectModelCancel(t *testing.T) {
	m := selectModel{title: "Pick", options: []string{"a"}}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(selectModel).cancelled {
		t.Fatal("esc should cancel")
	}
}

func TestMultiSelectToggles(t *testing.T) {
	m := multiSelectModel{title: "Pick many", options: []string{"a", "b"}, picked: map[int]bool{}}
	next, _ := m.Update(keyRune(' '))
	next, _ = next.Update(keyRune('j'))
	next, _ = next.Update(keyRune(' '))
	next, _ = next.Update(keyRune(' ')) // untoggle b
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(multiSelectModel)
	if !got.confirmed || !got.picked[0] || got.picked[1] {
		t.Fatalf("picked=%v", got.picked)
	}
}

func TestConfirmModelToggle(t *testing.T) {
	m := confirmModel{question: "sure?", yes: true}
	next, _ := m.Update(keyRune('n'))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(confirmModel)
	if got.yes || !got.confirmed {
		t.Fatalf("yes=%v confirmed=%v", got.yes, got.confirmed)
	}
}

func TestViewsRenderOptions(t *testing.T) {
	m := selectModel{title: "Pick", options: []string{"alpha", "beta"}}
	view := m.View()
	for _, want := range []string{"Pick", "alpha", "beta"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
