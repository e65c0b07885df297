package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Addon names as shown in the menu.
const (
	AddonDocker = "Add Docker Support"
	AddonCI     = "Add CI (GitHub Actions)"
)

// Addons lists the offered add-ons in menu order.
var Addons = []string{AddonDocker, AddonCI}

type fileSpec struct {
	path string
	tmpl string
}

// scaffolders maps a stack name to the boilerplate it produces. Stacks
// not listed here still work with launchkit; they just start from an
// empty folder.
var scaffolders = map[string][]fileSpec{
	"Flask (Python)": {
		{"app.py", flaskApp},
		{"requirements.txt", flaskRequirements},
	},
	"Node.js (Express)": {
		{"package.json", expressPackageJSON},
		{"server.js", expressServer},
	},
	"React (Vite)": {
		{"package.json", vitePackageJSON},
		{"index.html", viteIndexHTML},
		{"vite.config.js", viteConfig},
		{filepath.Join("src", "main.jsx"), viteMainJSX},
	},
	"Go (Gin/Fiber)": {
		{"main.go", goMain},
		{"go.mod", goModFile},
	},
	"Empty Project (just Git + README)": {},
}

// Supported reports whether the stack has a boilerplate generator.
func Supported(stackName string) bool {
	_, ok := scaffolders[stackName]
	return ok
}

// Run writes the stack's boilerplate plus README and .gitignore into
// folder. Existing files are never overwritten; a half-initialized
// folder keeps what the user already has.
func Run(stackName, projectName, folder string) error {
	files := append([]fileSpec{
		{"README.md", readme},
		{".gitignore", gitignore},
	}, scaffolders[stackName]...)
	return render(files, projectName, folder)
}

// ApplyAddons writes the addon files chosen at project setup. language
// selects the Dockerfile flavor.
func ApplyAddons(addons []string, language, projectName, folder string) error {
	var files []fileSpec
	for _, a := range addons {
		switch a {
		case AddonDocker:
			files = append(files, fileSpec{"Dockerfile", dockerfileFor(language)})
		case AddonCI:
			files = append(files, fileSpec{filepath.Join(".github", "workflows", "ci.yml"), githubActionsCI})
		}
	}
	return render(files, projectName, folder)
}

func dockerfileFor(language string) string {
	switch {
	case strings.HasPrefix(language, "python"):
		return dockerfilePython
	case language == "go":
		return dockerfileGo
	default:
		return dockerfileNode
	}
}

func render(files []fileSpec, projectName, folder string) error {
	data := struct{ Name string }{Name: projectName}
	for _, f := range files {
		dst := filepath.Join(folder, f.path)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("scaffold %s: %w", f.path, err)
		}
		t, err := template.New(f.path).Parse(f.tmpl)
		if err != nil {
			return fmt.Errorf("scaffold template %s: %w", f.path, err)
		}
		var b strings.Builder
		if err := t.Execute(&b, data); err != nil {
			return fmt.Errorf("scaffold render %s: %w", f.path, err)
		}
		if err := os.WriteFile(dst, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("scaffold write %s: %w", f.path, err)
		}
	}
	return nil
}
