//go:build !windows

package daemon

import (
	"os"
	"syscall"
)

// getSysProcAttr puts the child in its own session so it survives the
// terminal that started it.
func getSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// terminate asks the daemon to exit so it can release its grabs.
func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
