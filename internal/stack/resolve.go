package stack

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/launchkit/launchkit/internal/process"
)

// DefaultURL is used when a stack declares no dev port.
const DefaultURL = "http://localhost:3000"

// ErrNotConfigured means the stack has no runnable dev command. Callers
// fall back to asking the user for a manual command.
var ErrNotConfigured = errors.New("no dev server command configured")

// Resolve turns a stack name and project folder into a launchable spec.
// The table entry is the starting point; the project's actual layout can
// refine the command (entry-file sniffing, fullstack split, virtualenv).
func (c *Catalog) Resolve(stackName, folder string) (process.Spec, error) {
	info, ok := c.stacks[stackName]
	if !ok || info.DevCommand == "" {
		return process.Spec{}, fmt.Errorf("stack %q: %w", stackName, ErrNotConfigured)
	}
	argv := strings.Fields(info.DevCommand)
	port := info.DevPort
	switch {
	case info.ProjectType == TypeFullstack:
		argv, port = sniffFullstack(folder, argv, port)
	case strings.HasPrefix(argv[0], "flask"):
		argv = sniffPythonEntry(folder, argv)
	}
	argv = applyVirtualenv(folder, argv)

	env := make(map[string]string, len(info.EnvVars))
	for k, v := range info.EnvVars {
		env[k] = v
	}
	return process.Spec{
		Command: argv,
		WorkDir: folder,
		URL:     urlForPort(port),
		Env:     env,
	}, nil
}

// ManualSpec builds a spec from a user-typed command line. The command is
// split on whitespace, never run through a shell.
func ManualSpec(command, folder string) (process.Spec, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return process.Spec{}, process.ErrEmptyCommand
	}
	return process.Spec{Command: argv, WorkDir: folder, URL: DefaultURL}, nil
}

func urlForPort(port int) string {
	if port <= 0 {
		return DefaultURL
	}
	return fmt.Sprintf("http://localhost:%d", port)
}

// sniffPythonEntry prefers a concrete entry file over the flask launcher
// when the project has one.
func sniffPythonEntry(folder string, argv []string) []string {
	for _, entry := range []string{"app.py", "run.py", "main.py"} {
		if fileExists(filepath.Join(folder, entry)) {
			return []string{"python", entry}
		}
	}
	return argv
}

// sniffFullstack handles projects whose configured command assumes a
// combined frontend/backend root. When only one half is present the
// layout decides what actually runs.
func sniffFullstack(folder string, argv []string, port int) ([]string, int) {
	if dirExists(filepath.Join(folder, "frontend")) && dirExists(filepath.Join(folder, "backend")) {
		return argv, port
	}
	if pkg := filepath.Join(folder, "package.json"); fileExists(pkg) {
		return npmCommand(pkg), port
	}
	if fileExists(filepath.Join(folder, "app.py")) {
		return []string{"python", "app.py"}, 5000
	}
	if fileExists(filepath.Join(folder, "manage.py")) {
		return []string{"python", "manage.py", "runserver"}, 8000
	}
	return argv, port
}

// npmCommand picks "npm run dev" when the package declares a dev script,
// "npm start" when it only has start.
func npmCommand(packageJSON string) []string {
	raw, err := os.ReadFile(packageJSON) // #nosec G304 -- path derived from the project folder
	if err != nil {
		return []string{"npm", "run", "dev"}
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return []string{"npm", "run", "dev"}
	}
	if _, ok := pkg.Scripts["dev"]; ok {
		return []string{"npm", "run", "dev"}
	}
	if _, ok := pkg.Scripts["start"]; ok {
		return []string{"npm", "start"}
	}
	return []string{"npm", "run", "dev"}
}

// launchers that must never be redirected into a virtualenv.
var launcherAllowList = map[string]bool{
	"npm": true, "npx": true, "node": true, "yarn": true, "pnpm": true,
	"go": true, "cargo": true, "dotnet": true, "mvn": true, "./mvnw": true,
	"bin/rails": true,
}

// applyVirtualenv redirects the first argv token to the project's venv
// copy of that binary when one exists. Platform launchers stay untouched.
func applyVirtualenv(folder string, argv []string) []string {
	if len(argv) == 0 || launcherAllowList[argv[0]] {
		return argv
	}
	candidate := venvBinary(folder, argv[0])
	if candidate == "" {
		return argv
	}
	out := append([]string{candidate}, argv[1:]...)
	return out
}

func venvBinary(folder, name string) string {
	var candidate string
	if runtime.GOOS == "windows" {
		candidate = filepath.Join(folder, "venv", "Scripts", name+".exe")
	} else {
		candidate = filepath.Join(folder, "venv", "bin", name)
	}
	if fileExists(candidate) {
		return candidate
	}
	return ""
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
