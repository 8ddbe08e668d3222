package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"globalaccel/accel"
	"globalaccel/backend"
	"globalaccel/cmd/help"
)

func newListCommand(p Platform) *cobra.Command {
	var resolve bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List actions and their shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p)
			if err != nil {
				return err
			}
			var mgr *accel.Manager
			if resolve {
				// A dry run: the recorder grants every grab, so only
				// priority decides.
				mgr = accel.NewManager(s.reg, backend.NewRecorder())
				defer mgr.Close()
			}
			fmt.Fprint(cmd.OutOrStdout(), help.NewGenerator(s.namer()).Listing(s.cfg.Group, s.reg, mgr))
			return nil
		},
	}
	c.Flags().BoolVar(&resolve, "resolve", false, "Show which action gets contested keys")
	return c
}

func newCheckCommand(p Platform) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report keys claimed by more than one action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p)
			if err != nil {
				return err
			}
			g := help.NewGenerator(s.namer())
			out := cmd.OutOrStdout()
			for _, note := range g.Unbound(s.reg) {
				fmt.Fprintln(out, note)
			}
			conflicts := g.Conflicts(s.reg)
			if len(conflicts) == 0 {
				fmt.Fprintln(out, "no conflicts")
				return nil
			}
			fmt.Fprintln(out, strings.Join(conflicts, "\n"))
			return fmt.Errorf("%d conflicting keys", len(conflicts))
		},
	}
}
