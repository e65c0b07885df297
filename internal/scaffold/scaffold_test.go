package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunFlask(t *testing.T) {
	dir := t.TempDir()
	if err := Run("Flask (Python)", "demo-api", dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, f := range []string{"app.py", "requirements.txt", "README.md", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Fatalf("missing %s: %v", f, err)
		}
	}
	raw, _ := os.ReadFile(filepath.Join(dir, "app.py"))
	if !strings.Contains(string(raw), "demo-api") {
		t.Fatalf("project name not rendered: %s", raw)
	}
}

func TestRunReactVite(t *testing.T) {
	dir := t.TempDir()
	if err := Run("React (Vite)", "web", dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "main.jsx")); err != nil {
		t.Fatalf("nested file missing: %v", err)
	}
	raw, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	if !strings.Contains(string(raw), `"dev": "vite"`) {
		t.Fatalf("dev script missing: %s", raw)
	}
}

func TestRunNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "app.py")
	if err := os.WriteFile(existing, []byte("# mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Run("Flask (Python)", "demo", dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	raw, _ := os.ReadFile(existing)
	if string(raw) != "# mine\n" {
		t.Fatalf("existing file clobbered: %s", raw)
	}
}

func TestApplyAddons(t *testing.T) {
	dir := t.TempDir()
	err := ApplyAddons([]string{AddonDocker, AddonCI}, "python", "demo", dir)
	if err != nil {
		t.Fatalf("addons: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	if err != nil {
		t.Fatalf("dockerfile: %v", err)
	}
	if !strings.Contains(string(raw), "python:3.12") {
		t.Fatalf("wrong dockerfile flavor: %s", raw)
	}
	if _, err := os.Stat(filepath.Join(dir, ".github", "workflows", "ci.yml")); err != nil {
		t.Fatalf("ci workflow missing: %v", err)
	}
}

func TestSupported(t *testing.T) {
	if !Supported("Flask (Python)") {
		t.Fatal("flask should be supported")
	}
	if Supported("Spring Boot (Java)") {
		t.Fatal("spring boot has no scaffolder")
	}
}
