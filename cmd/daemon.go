package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"globalaccel/config"
	"globalaccel/daemon"
	"globalaccel/log"
)

func newDaemonCommand(p Platform) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Grab the configured shortcuts and run actions in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.NewSource == nil {
				return fmt.Errorf("no key backend available")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log.InitializeWithConfig(true, cfg.LogConfig())
			defer log.Close()

			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			src, err := p.NewSource(cfg)
			if err != nil {
				return fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
			}

			// Notify on SIGINT (Ctrl+C) and SIGTERM so grabs are released.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return daemon.RunDaemon(ctx, cfg, daemon.Options{
				Dir:        dir,
				Source:     src,
				Run:        daemon.ExecRunner,
				DetectMeta: p.HasMetaKey,
			})
		},
	}
}

func newStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the daemon in the background, replacing a running one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := daemon.StopDaemon(); err != nil {
				return err
			}
			if err := daemon.LaunchDaemon(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "daemon started")
			return nil
		},
	}
}

func newStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.StopDaemon()
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a background daemon was started",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, ok, err := daemon.ReadPID()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "daemon not running")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "daemon running (PID: %d)\n", pid)
			if dir, err := config.GetConfigDir(); err == nil && daemon.ShortcutsBlocked(dir) {
				fmt.Fprintln(cmd.OutOrStdout(), "shortcuts blocked")
			}
			return nil
		},
	}
}

// newBlockCommand builds "block" or "unblock". A running daemon releases
// its keys while blocked.
func newBlockCommand(block bool) *cobra.Command {
	use, short := "block", "Release all global shortcuts until unblocked"
	if !block {
		use, short = "unblock", "Grab global shortcuts again"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			if err := daemon.BlockShortcuts(dir, block); err != nil {
				return err
			}
			state := "blocked"
			if !block {
				state = "unblocked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shortcuts %s\n", state)
			return nil
		},
	}
}
