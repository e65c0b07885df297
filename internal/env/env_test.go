package env

import (
	"slices"
	"testing"
)

func TestMergeOverrideWins(t *testing.T) {
	e := New([]string{"FLASK_ENV=production", "PATH=/bin"})
	got := e.Merge(map[string]string{"FLASK_ENV": "development"})
	if !slices.Contains(got, "FLASK_ENV=development") {
		t.Fatalf("override lost: %v", got)
	}
	if !slices.Contains(got, "PATH=/bin") {
		t.Fatalf("base dropped: %v", got)
	}
}

func TestMergeGlobalBetweenBaseAndOverride(t *testing.T) {
	e := New([]string{"A=base"})
	e.SetGlobal("A", "global")
	e.SetGlobal("B", "global")
	got := e.Merge(map[string]string{"B": "launch"})
	if !slices.Contains(got, "A=global") || !slices.Contains(got, "B=launch") {
		t.Fatalf("layer precedence broken: %v", got)
	}
}

func TestMergeExpandsReferences(t *testing.T) {
	e := New([]string{"HOME=/home/dev"})
	got := e.Merge(map[string]string{"VENV": "${HOME}/venv"})
	if !slices.Contains(got, "VENV=/home/dev/venv") {
		t.Fatalf("expansion failed: %v", got)
	}
}

func TestMergeSortedAndStable(t *testing.T) {
	e := New([]string{"B=2", "A=1"})
	got := e.Merge(nil)
	if !slices.IsSorted(got) {
		t.Fatalf("merge output not sorted: %v", got)
	}
}
