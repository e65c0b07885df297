package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MetadataFile is the per-project metadata file name.
const MetadataFile = "launchkit.json"

// Data is the persisted project metadata living next to the code.
type Data struct {
	ProjectName   string   `json:"project_name"`
	ProjectType   string   `json:"project_type"`
	ProjectStack  string   `json:"project_stack"`
	Addons        []string `json:"addons"`
	CreatedDate   string   `json:"created_date"`
	SetupComplete bool     `json:"setup_complete"`
}

// ErrNoProject means the folder holds no launchkit metadata.
var ErrNoProject = errors.New("folder is not a launchkit project")

// New initializes metadata for a freshly scaffolded project.
func New(name, projectType, stack string, addons []string) *Data {
	return &Data{
		ProjectName:   name,
		ProjectType:   projectType,
		ProjectStack:  stack,
		Addons:        append([]string(nil), addons...),
		CreatedDate:   time.Now().Format("2006-01-02 15:04:05"),
		SetupComplete: true,
	}
}

// Load reads the metadata file from a project folder.
func Load(folder string) (*Data, error) {
	raw, err := os.ReadFile(filepath.Join(folder, MetadataFile)) // #nosec G304 -- folder chosen by the user
	if os.IsNotExist(err) {
		return nil, ErrNoProject
	}
	if err != nil {
		return nil, fmt.Errorf("read project metadata: %w", err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", MetadataFile, err)
	}
	return &d, nil
}

// Save writes the metadata file into the project folder.
func (d *Data) Save(folder string) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(filepath.Join(folder, MetadataFile), raw, 0o644); err != nil {
		return fmt.Errorf("write project metadata: %w", err)
	}
	return nil
}

// HasAddon reports whether the named addon was enabled at setup time.
func (d *Data) HasAddon(name string) bool {
	for _, a := range d.Addons {
		if a == name {
			return true
		}
	}
	return false
}
