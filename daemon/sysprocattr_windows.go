//go:build windows

package daemon

import (
	"os"
	"syscall"
)

const (
	createNewProcessGroup = 0x00000200
	detachedProcess       = 0x00000008
)

func getSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNewProcessGroup | detachedProcess}
}

// terminate kills the process; Windows has no SIGTERM to deliver.
func terminate(p *os.Process) error {
	return p.Kill()
}
