package process

import (
	"errors"
	"os/exec"
)

// Spec describes how to start a dev server. Command is plain argv; no shell
// is involved, so tokens are passed to the child exactly as written. Env
// entries override the inherited environment on key collision.
type Spec struct {
	Command []string          `json:"command" mapstructure:"command"`
	WorkDir string            `json:"work_dir,omitempty" mapstructure:"work_dir"`
	URL     string            `json:"url,omitempty" mapstructure:"url"`
	Env     map[string]string `json:"env,omitempty" mapstructure:"env"`
}

var ErrEmptyCommand = errors.New("spec has empty command")

// BuildCommand constructs the exec.Cmd for the spec's argv and working
// directory. Environment and output wiring are applied by the handle.
func (s *Spec) BuildCommand() (*exec.Cmd, error) {
	if len(s.Command) == 0 {
		return nil, ErrEmptyCommand
	}
	// #nosec G204 -- argv comes from the stack table or an explicit user prompt
	cmd := exec.Command(s.Command[0], s.Command[1:]...)
	if s.WorkDir != "" {
		cmd.Dir = s.WorkDir
	}
	return cmd, nil
}
