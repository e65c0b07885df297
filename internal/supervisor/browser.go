package supervisor

import (
	"os/exec"
	"runtime"
)

// openBrowser launches the platform's URL opener, best effort. The child
// is not waited on; a broken opener must not stall the monitor.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
