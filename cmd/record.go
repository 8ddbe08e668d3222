package cmd

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"globalaccel/daemon"
	"globalaccel/keys"
	"globalaccel/log"
	"globalaccel/ui/overlay"
)

func newRecordCommand(p Platform) *cobra.Command {
	var target string
	var noCopy bool
	c := &cobra.Command{
		Use:   "record",
		Short: "Type a shortcut to get its text, optionally binding it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p)
			if err != nil {
				return err
			}

			title := "Press the shortcut"
			if target != "" {
				if _, err := s.action(target); err != nil {
					return err
				}
				title = fmt.Sprintf("Press the new shortcut for %s", target)
			}
			rec := overlay.NewShortcutRecorder(title, time.Second)
			rec.SetConflictCheck(func(sc keys.Shortcut) string {
				if a := s.reg.ActionFor(sc); a != nil && a.Name() != target {
					return fmt.Sprintf("already used by %s", a.Name())
				}
				return ""
			})

			// A running daemon would otherwise swallow grabbed keys.
			if !daemon.ShortcutsBlocked(s.dir) {
				if err := daemon.BlockShortcuts(s.dir, true); err != nil {
					log.WarningLog.Printf("failed to block shortcuts while recording: %v", err)
				} else {
					defer func() {
						if err := daemon.BlockShortcuts(s.dir, false); err != nil {
							log.ErrorLog.Printf("failed to unblock shortcuts: %v", err)
						}
					}()
				}
			}

			sc, ok, err := overlay.RecordShortcut(rec)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			text := sc.String()
			fmt.Fprintln(cmd.OutOrStdout(), text)
			if !noCopy {
				if err := clipboard.WriteAll(text); err != nil {
					log.WarningLog.Printf("failed to copy shortcut to clipboard: %v", err)
				}
			}
			if target == "" {
				return nil
			}
			a, _ := s.action(target)
			return assign(cmd, s, a, keys.Set{sc}, false)
		},
	}
	c.Flags().StringVar(&target, "set", "", "Bind the recorded shortcut to this action")
	c.Flags().BoolVar(&noCopy, "no-copy", false, "Do not copy the shortcut to the clipboard")
	return c
}
