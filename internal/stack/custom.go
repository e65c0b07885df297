package stack

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadUserStacks merges user-defined stacks from a YAML file into the
// catalog, overriding built-ins on name collision. A missing file is not
// an error; users without a catalog file get the built-ins only.
//
// File shape:
//
//	stacks:
//	  "My API (Hono)":
//	    project_type: "Backend only"
//	    language: js
//	    dev_command: "npm run dev"
//	    dev_port: 8787
func (c *Catalog) LoadUserStacks(path string) error {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from config
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read user stacks: %w", err)
	}
	var doc struct {
		Stacks map[string]Info `yaml:"stacks"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse user stacks %s: %w", path, err)
	}
	for name, info := range doc.Stacks {
		c.stacks[name] = info
	}
	return nil
}
