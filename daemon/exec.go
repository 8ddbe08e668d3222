package daemon

import (
	"os/exec"

	"globalaccel/log"
)

// ExecRunner starts command without waiting for it. The exit status is
// logged from a background goroutine.
func ExecRunner(command string, args []string) {
	cmd := exec.Command(command, args...)
	if err := cmd.Start(); err != nil {
		log.ErrorLog.Printf("failed to run %s: %v", command, err)
		return
	}
	log.InfoLog.Printf("started %s (PID: %d)", command, cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			log.WarningLog.Printf("%s exited: %v", command, err)
		}
	}()
}
