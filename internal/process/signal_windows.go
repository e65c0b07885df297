//go:build windows

package process

import "os"

// Windows has no SIGTERM; terminate degrades to a hard kill.
func terminate(pid int) error { return kill(pid) }

func kill(pid int) error {
	if pid <= 0 {
		return nil
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return p.Kill()
}

func processExists(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil || p == nil {
		return false
	}
	return true
}
