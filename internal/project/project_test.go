package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d := New("demo", "Backend only", "Flask (Python)", []string{"Add Docker Support"})
	if err := d.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ProjectName != "demo" || got.ProjectStack != "Flask (Python)" || !got.SetupComplete {
		t.Fatalf("roundtrip mangled: %+v", got)
	}
	if !got.HasAddon("Add Docker Support") || got.HasAddon("Add CI (GitHub Actions)") {
		t.Fatalf("addons: %v", got.Addons)
	}
	if got.CreatedDate == "" {
		t.Fatal("created date empty")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrNoProject) {
		t.Fatalf("expected ErrNoProject, got %v", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MetadataFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
