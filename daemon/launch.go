package daemon

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"globalaccel/config"
	"globalaccel/log"
)

// PIDFileName is written next to the config files by Launch.
const PIDFileName = "daemon.pid"

func pidFilePath() (string, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, PIDFileName), nil
}

// LaunchDaemon starts "<executable> daemon" as a detached child and
// records its PID.
func LaunchDaemon() error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	cmd := exec.Command(execPath, "daemon")

	// Detach the process from the parent
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = getSysProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start child process: %w", err)
	}
	log.InfoLog.Printf("started daemon child process with PID: %d", cmd.Process.Pid)

	pidFile, err := pidFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	// Don't wait for the child to exit, it's detached
	return cmd.Process.Release()
}

// ReadPID returns the PID recorded by LaunchDaemon. ok is false when no
// daemon was launched.
func ReadPID() (pid int, ok bool, err error) {
	pidFile, err := pidFilePath()
	if err != nil {
		return 0, false, err
	}
	data, err := os.ReadFile(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read PID file: %w", err)
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, fmt.Errorf("invalid PID file format: %w", err)
	}
	return pid, true, nil
}

// StopDaemon kills the daemon recorded in the PID file. A missing PID file
// is not an error.
func StopDaemon() error {
	pid, ok, err := ReadPID()
	if err != nil || !ok {
		return err
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find daemon process: %w", err)
	}
	if err := terminate(proc); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to stop daemon process: %w", err)
	}

	pidFile, err := pidFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(pidFile); err != nil {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}

	log.InfoLog.Printf("daemon process (PID: %d) stopped successfully", pid)
	return nil
}
