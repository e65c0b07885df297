package launchkit

import (
	"errors"
	"testing"
)

func TestFacadeStatusNotRunning(t *testing.T) {
	s := New()
	if _, err := s.Status(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
	if _, err := s.Logs(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
	if _, err := s.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestFacadeResolve(t *testing.T) {
	c := NewCatalog()
	spec, err := Resolve(c, "React (Vite)", t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.URL == "" || len(spec.Command) == 0 {
		t.Fatalf("spec: %+v", spec)
	}
}

func TestFacadeManualSpec(t *testing.T) {
	spec, err := ManualSpec("npm run dev", t.TempDir())
	if err != nil {
		t.Fatalf("manual: %v", err)
	}
	if len(spec.Command) != 3 || spec.Command[0] != "npm" {
		t.Fatalf("command: %v", spec.Command)
	}
}
