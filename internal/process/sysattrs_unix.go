//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr makes the child its own process group leader so
// signals can target the whole tree.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
