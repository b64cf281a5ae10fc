// Package open provides a cross-platform abstraction for launching files and URLs with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/dfawole/m4tplay/constant"
)

// Start opens the specified input (URL or file path) using the default system
// handler asynchronously.
func Start(input string) error {
	cmd, ok := command(input)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	default:
		return nil, false
	}
}
