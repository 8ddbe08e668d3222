// Package cmd implements the globalaccel command line.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"globalaccel/accel"
	"globalaccel/config"
	"globalaccel/daemon"
	"globalaccel/keys"
	"globalaccel/ui/fuzzy"
)

// Platform supplies what the commands need from the OS. Keeping it out of
// this package lets the CLI build and test without cgo.
type Platform struct {
	// NewSource opens the key grab backend selected by cfg.Backend.
	NewSource func(cfg *config.Config) (daemon.Source, error)
	// HasMetaKey reports whether the keyboard has a Meta key.
	HasMetaKey func() bool
}

// NewRootCommand builds the command tree.
func NewRootCommand(p Platform) *cobra.Command {
	root := &cobra.Command{
		Use:   "globalaccel",
		Short: "Global keyboard shortcuts for desktop actions",
		Long: `globalaccel binds system-wide keyboard shortcuts to commands.

Actions are declared in actions.toml in the config directory
(~/.globalaccel, or $GLOBALACCEL_HOME). User shortcuts are kept in
shortcuts.toml and override the defaults. The daemon grabs the keys and
reloads both files when they change.

Examples:
  globalaccel start                         # Start the daemon in the background
  globalaccel list --resolve                # Show which action gets each key
  globalaccel set Terminal "Meta+Return"    # Rebind an action
  globalaccel set Notes "Meta+N,N;Alt+F9"   # A chord and an alternate
  globalaccel reset Terminal                # Back to the default`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newDaemonCommand(p),
		newStartCommand(),
		newStopCommand(),
		newStatusCommand(),
		newBlockCommand(true),
		newBlockCommand(false),
		newListCommand(p),
		newCheckCommand(p),
		newSetCommand(p),
		newResetCommand(p),
		newRecordCommand(p),
	)
	return root
}

// session is the registry and store the editing commands work on.
type session struct {
	cfg   *config.Config
	dir   string
	reg   *accel.Registry
	store *config.FileStore
}

// openSession loads config, actions and shortcuts without grabbing keys.
func openSession(p Platform) (*session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	store, err := config.OpenFileStore(dir)
	if err != nil {
		return nil, err
	}
	actions, err := config.LoadActions(dir)
	if err != nil {
		return nil, err
	}

	reg := accel.NewRegistry(
		accel.WithMetaProbe(cfg.MetaProbe(p.HasMetaKey)),
		accel.WithExpander(cfg.Expander()),
	)
	if err := actions.Register(reg, nil); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.ActionsFileName, err)
	}
	reg.ReadAll(store, cfg.Group)
	return &session{cfg: cfg, dir: dir, reg: reg, store: store}, nil
}

// action returns the named action, refusing labels.
func (s *session) action(name string) (*accel.Action, error) {
	a := s.reg.Action(name)
	if a == nil || a.IsLabel() {
		if hints := s.suggest(name); len(hints) > 0 {
			return nil, fmt.Errorf("no action named %q, did you mean %s?", name, strings.Join(hints, " or "))
		}
		return nil, fmt.Errorf("no action named %q", name)
	}
	return a, nil
}

// suggest returns up to three action names close to name.
func (s *session) suggest(name string) []string {
	var names []string
	for _, a := range s.reg.Actions() {
		if !a.IsLabel() {
			names = append(names, a.Name())
		}
	}
	var out []string
	for _, r := range fuzzy.Rank(name, names, 0.3, 3) {
		out = append(out, strconv.Quote(r.Text))
	}
	return out
}

// save writes changed shortcuts and reports a failed sync.
func (s *session) save(global bool) error {
	if err := s.reg.WriteAll(s.store, s.cfg.Group, false, global); err != nil {
		return fmt.Errorf("failed to save shortcuts: %w", err)
	}
	return nil
}

// conflictsFor names the other actions that share a first keystroke with a.
func (s *session) conflictsFor(a *accel.Action) []string {
	var out []string
	for _, c := range s.reg.DetectConflicts() {
		mine := false
		for _, owner := range c.Actions {
			if owner == a {
				mine = true
			}
		}
		if !mine {
			continue
		}
		for _, owner := range c.Actions {
			if owner != a {
				out = append(out, fmt.Sprintf("%s is also bound to %s", c.Combo.Format(s.cfg.Namer()), owner.Name()))
			}
		}
	}
	return out
}

func (s *session) namer() keys.Namer {
	return s.cfg.Namer()
}
