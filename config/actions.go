package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"

	"globalaccel/accel"
	"globalaccel/keys"
)

// ActionDef is one [[action]] table of actions.toml.
type ActionDef struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	// Label makes the entry a group header; only name and description apply.
	Label bool `toml:"label"`

	Default     string `toml:"default"`
	DefaultMeta string `toml:"default_meta"`

	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	// Arg, when set, is appended to the command line of every run.
	Arg *int `toml:"arg"`
	// Detail appends the action name and the typed shortcut to the
	// command line.
	Detail bool `toml:"detail"`

	Configurable *bool `toml:"configurable"`
	Disabled     bool  `toml:"disabled"`
}

// ActionFile is the parsed actions.toml.
type ActionFile struct {
	Actions []ActionDef `toml:"action"`
}

// Runner starts an action's command.
type Runner func(command string, args []string)

// LoadActions reads actions.toml from dir. A missing file is empty.
func LoadActions(dir string) (*ActionFile, error) {
	path := filepath.Join(dir, ActionsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ActionFile{}, nil
		}
		return nil, fmt.Errorf("failed to read actions file: %w", err)
	}
	var f ActionFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse actions file %s: %w", path, err)
	}
	return &f, nil
}

// Register inserts every definition into reg in file order. Definitions
// with invalid shortcuts or duplicate names are reported together; the
// valid ones are still registered.
func (f *ActionFile) Register(reg *accel.Registry, run Runner) error {
	var errs []error
	for _, def := range f.Actions {
		if err := def.register(reg, run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d ActionDef) register(reg *accel.Registry, run Runner) error {
	if d.Name == "" {
		return errors.New("action without a name")
	}
	if d.Label {
		if _, ok := reg.InsertLabel(d.Name, d.Description); !ok {
			return fmt.Errorf("duplicate action name %q", d.Name)
		}
		return nil
	}

	noMeta, err := keys.ParseSet(d.Default)
	if err != nil {
		return fmt.Errorf("action %q: %w", d.Name, err)
	}
	withMeta := noMeta
	if d.DefaultMeta != "" {
		if withMeta, err = keys.ParseSet(d.DefaultMeta); err != nil {
			return fmt.Errorf("action %q: %w", d.Name, err)
		}
	}

	configurable := true
	if d.Configurable != nil {
		configurable = *d.Configurable
	}
	if _, ok := reg.InsertAction(d.Name, d.Description, noMeta, withMeta, d.target(run), configurable, !d.Disabled); !ok {
		return fmt.Errorf("duplicate action name %q", d.Name)
	}
	return nil
}

func (d ActionDef) target(run Runner) accel.Target {
	if d.Command == "" || run == nil {
		return nil
	}
	command := d.Command
	args := append([]string(nil), d.Args...)
	withArgs := func(extra ...string) []string {
		out := make([]string, 0, len(args)+len(extra))
		return append(append(out, args...), extra...)
	}

	switch {
	case d.Arg != nil:
		return accel.CallInt{Arg: *d.Arg, Fn: func(n int) {
			run(command, withArgs(strconv.Itoa(n)))
		}}
	case d.Detail:
		return accel.CallDetail(func(name, _ string, s keys.Shortcut) {
			run(command, withArgs(name, s.String()))
		})
	default:
		return accel.Call(func() {
			run(command, withArgs())
		})
	}
}
