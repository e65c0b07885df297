package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/launchkit/launchkit/internal/config"
	"github.com/launchkit/launchkit/internal/project"
	"github.com/launchkit/launchkit/internal/stack"
	"github.com/launchkit/launchkit/internal/supervisor"
)

func testApp() *app {
	return &app{
		cfg:     &config.Config{},
		sup:     supervisor.New(supervisor.DefaultConfig()),
		catalog: stack.NewCatalog(),
	}
}

func TestResolveSpecFromMetadata(t *testing.T) {
	dir := t.TempDir()
	if err := project.New("demo", stack.TypeBackend, "Flask (Python)", nil).Save(dir); err != nil {
		t.Fatal(err)
	}
	c := command{global: &GlobalFlags{}}
	spec, projectName, stackName, err := c.resolveSpec(testApp(), ServerFlags{Folder: dir})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if projectName != "demo" || stackName != "Flask (Python)" {
		t.Fatalf("got project=%q stack=%q", projectName, stackName)
	}
	if len(spec.Command) == 0 || spec.Command[0] != "flask" {
		t.Fatalf("command: %v", spec.Command)
	}
}

func TestResolveSpecCommandOverride(t *testing.T) {
	dir := t.TempDir()
	c := command{global: &GlobalFlags{}}
	spec, _, stackName, err := c.resolveSpec(testApp(), ServerFlags{Folder: dir, Command: "python app.py --port 8000"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if stackName != "custom" {
		t.Fatalf("stack: %q", stackName)
	}
	want := []string{"python", "app.py", "--port", "8000"}
	if len(spec.Command) != len(want) {
		t.Fatalf("command: %v", spec.Command)
	}
	for i := range want {
		if spec.Command[i] != want[i] {
			t.Fatalf("command: %v", spec.Command)
		}
	}
}

func TestResolveSpecNoProject(t *testing.T) {
	c := command{global: &GlobalFlags{}}
	if _, _, _, err := c.resolveSpec(testApp(), ServerFlags{Folder: t.TempDir()}); err == nil {
		t.Fatal("expected error without metadata or flags")
	}
}

func TestInitNonInteractive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	c := command{global: &GlobalFlags{}}
	a := testApp()
	err := c.Init(a, InitFlags{
		Name:   "demo",
		Stack:  "Flask (Python)",
		Folder: dir,
		NoGit:  true,
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, f := range []string{"app.py", "requirements.txt", "README.md", project.MetadataFile} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Fatalf("missing %s: %v", f, err)
		}
	}
	meta, err := project.Load(dir)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.ProjectStack != "Flask (Python)" || !meta.SetupComplete {
		t.Fatalf("metadata: %+v", meta)
	}
}

func TestStacksListing(t *testing.T) {
	c := command{global: &GlobalFlags{}}
	if err := c.Stacks(testApp(), StacksFlags{Type: stack.TypeBackend}); err != nil {
		t.Fatalf("stacks: %v", err)
	}
	if err := c.Stacks(testApp(), StacksFlags{Type: "nope"}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestBuildRootRegistersCommands(t *testing.T) {
	root := buildRoot()
	want := map[string]bool{"server": false, "init": false, "serve": false, "stacks": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("missing subcommand %s", name)
		}
	}
}
