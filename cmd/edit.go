package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"globalaccel/accel"
	"globalaccel/keys"
)

func newSetCommand(p Platform) *cobra.Command {
	var global bool
	c := &cobra.Command{
		Use:   "set <action> <shortcuts>",
		Short: `Bind an action, e.g. "Meta+X,Asterisk;Alt+F2" or "none"`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p)
			if err != nil {
				return err
			}
			set, err := keys.ParseSet(args[1])
			if err != nil {
				return err
			}
			a, err := s.action(args[0])
			if err != nil {
				return err
			}
			return assign(cmd, s, a, set, global)
		},
	}
	c.Flags().BoolVar(&global, "global", false, "Write to the shared file instead of the local one")
	return c
}

func newResetCommand(p Platform) *cobra.Command {
	var all, global bool
	c := &cobra.Command{
		Use:   "reset [action]",
		Short: "Restore the default shortcuts of an action",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(p)
			if err != nil {
				return err
			}
			if all {
				for _, a := range s.reg.Actions() {
					if a.Configurable() && !a.IsLabel() {
						a.SetShortcuts(a.EffectiveDefaults())
					}
				}
				return s.save(global)
			}
			a, err := s.action(args[0])
			if err != nil {
				return err
			}
			return assign(cmd, s, a, a.EffectiveDefaults(), global)
		},
	}
	c.Flags().BoolVar(&all, "all", false, "Reset every action")
	c.Flags().BoolVar(&global, "global", false, "Write to the shared file instead of the local one")
	return c
}

// assign binds set to a, saves and reports the result with any keys the
// action now shares.
func assign(cmd *cobra.Command, s *session, a *accel.Action, set keys.Set, global bool) error {
	if !a.Configurable() {
		return fmt.Errorf("action %q is not configurable", a.Name())
	}
	a.SetShortcuts(set)
	if err := s.save(global); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	text := a.Shortcuts().Format(s.namer(), nil)
	if a.Shortcuts().IsEmpty() {
		text = keys.NoneText
	}
	fmt.Fprintf(out, "%s: %s\n", a.Name(), text)
	for _, warn := range s.conflictsFor(a) {
		fmt.Fprintf(out, "warning: %s\n", warn)
	}
	return nil
}
