package stack

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/launchkit/launchkit/internal/process"
)

func TestResolveKnownStack(t *testing.T) {
	c := NewCatalog()
	spec, err := c.Resolve("Django (Python)", t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"python", "manage.py", "runserver"}
	if len(spec.Command) != len(want) {
		t.Fatalf("command = %v", spec.Command)
	}
	for i := range want {
		if spec.Command[i] != want[i] {
			t.Fatalf("command = %v", spec.Command)
		}
	}
	if spec.URL != "http://localhost:8000" {
		t.Fatalf("url = %q", spec.URL)
	}
}

func TestResolveUnknownStackNotConfigured(t *testing.T) {
	c := NewCatalog()
	_, err := c.Resolve("COBOL (CICS)", t.TempDir())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestResolveStackWithoutCommandNotConfigured(t *testing.T) {
	c := NewCatalog()
	_, err := c.Resolve("Empty Project (just Git + README)", t.TempDir())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestResolveCarriesEnvVars(t *testing.T) {
	c := NewCatalog()
	spec, err := c.Resolve("Flask (Python)", t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.Env["FLASK_DEBUG"] != "1" {
		t.Fatalf("env vars dropped: %v", spec.Env)
	}
}

func TestResolveFlaskPrefersEntryFile(t *testing.T) {
	c := NewCatalog()
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "app.py"), "print('hi')\n")
	spec, err := c.Resolve("Flask (Python)", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.Command[0] != "python" || spec.Command[1] != "app.py" {
		t.Fatalf("entry file not preferred: %v", spec.Command)
	}
}

func TestResolveVirtualenvInterpreter(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix venv layout")
	}
	c := NewCatalog()
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "app.py"), "")
	binDir := filepath.Join(dir, "venv", "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(binDir, "python"), "#!/bin/sh\n")
	spec, err := c.Resolve("Flask (Python)", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.Command[0] != filepath.Join(binDir, "python") {
		t.Fatalf("venv interpreter not applied: %v", spec.Command)
	}
}

func TestResolveNeverRedirectsLaunchers(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix venv layout")
	}
	c := NewCatalog()
	dir := t.TempDir()
	binDir := filepath.Join(dir, "venv", "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// A stray venv copy of npm must not hijack node stacks.
	mustWrite(t, filepath.Join(binDir, "npm"), "#!/bin/sh\n")
	spec, err := c.Resolve("React (Vite)", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.Command[0] != "npm" {
		t.Fatalf("launcher was redirected: %v", spec.Command)
	}
}

func TestResolveFullstackRootKeepsCombinedCommand(t *testing.T) {
	c := NewCatalog()
	dir := t.TempDir()
	for _, d := range []string{"frontend", "backend"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	spec, err := c.Resolve("MERN (Mongo + Express + React + Node)", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.Command[0] != "npm" || spec.URL != "http://localhost:3000" {
		t.Fatalf("combined root mishandled: %v %s", spec.Command, spec.URL)
	}
}

func TestResolveFullstackSniffsPythonHalf(t *testing.T) {
	c := NewCatalog()
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "app.py"), "")
	spec, err := c.Resolve("Flask + React", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spec.Command[0] != "python" || spec.Command[1] != "app.py" {
		t.Fatalf("python half not sniffed: %v", spec.Command)
	}
	if spec.URL != "http://localhost:5000" {
		t.Fatalf("url = %q", spec.URL)
	}
}

func TestResolveFullstackSniffsNpmScripts(t *testing.T) {
	c := NewCatalog()
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "package.json"), `{"scripts":{"start":"node server.js"}}`)
	spec, err := c.Resolve("PERN (Postgres + Express + React + Node)", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(spec.Command) != 2 || spec.Command[1] != "start" {
		t.Fatalf("expected npm start, got %v", spec.Command)
	}
}

func TestManualSpec(t *testing.T) {
	spec, err := ManualSpec("  rails server -p 4000 ", "/proj")
	if err != nil {
		t.Fatalf("manual: %v", err)
	}
	if len(spec.Command) != 4 || spec.Command[0] != "rails" {
		t.Fatalf("command = %v", spec.Command)
	}
	if spec.URL != DefaultURL || spec.WorkDir != "/proj" {
		t.Fatalf("defaults wrong: %+v", spec)
	}
}

func TestManualSpecEmpty(t *testing.T) {
	if _, err := ManualSpec("   ", "/proj"); !errors.Is(err, process.ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestLoadUserStacks(t *testing.T) {
	c := NewCatalog()
	path := filepath.Join(t.TempDir(), "stacks.yaml")
	mustWrite(t, path, `
stacks:
  "My API (Hono)":
    project_type: "Backend only"
    language: js
    dev_command: "npm run dev"
    dev_port: 8787
  "Flask (Python)":
    project_type: "Backend only"
    language: python
    dev_command: "flask run --port 9999"
    dev_port: 9999
`)
	if err := c.LoadUserStacks(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	spec, err := c.Resolve("My API (Hono)", t.TempDir())
	if err != nil {
		t.Fatalf("resolve custom: %v", err)
	}
	if spec.URL != "http://localhost:8787" {
		t.Fatalf("url = %q", spec.URL)
	}
	// Built-in entries are overridable.
	spec, err = c.Resolve("Flask (Python)", t.TempDir())
	if err != nil {
		t.Fatalf("resolve override: %v", err)
	}
	if spec.URL != "http://localhost:9999" {
		t.Fatalf("override lost: %q", spec.URL)
	}
}

func TestLoadUserStacksMissingFile(t *testing.T) {
	c := NewCatalog()
	if err := c.LoadUserStacks(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing file should be fine: %v", err)
	}
}

func TestNamesFiltersByType(t *testing.T) {
	c := NewCatalog()
	for _, name := range c.Names(TypeBackend) {
		info, _ := c.Get(name)
		if info.ProjectType != TypeBackend {
			t.Fatalf("%s leaked into backend list", name)
		}
	}
	if len(c.Names("")) <= len(c.Names(TypeBackend)) {
		t.Fatal("unfiltered list should be larger")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
