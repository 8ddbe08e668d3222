package accel

import (
	"globalaccel/keys"
)

// Action is a named entity owning a shortcut set and the target it runs.
// Actions are created through Registry.InsertAction or InsertLabel and
// belong to exactly one registry.
type Action struct {
	name        string
	description string

	defaultsNoMeta   keys.Set
	defaultsWithMeta keys.Set

	// shortcuts is stored expanded with the registry's Expander.
	shortcuts keys.Set

	configurable bool
	enabled      bool
	label        bool
	target       Target

	reg *Registry
}

func (a *Action) Name() string        { return a.name }
func (a *Action) Description() string { return a.description }
func (a *Action) Configurable() bool  { return a.configurable }
func (a *Action) Enabled() bool       { return a.enabled }
func (a *Action) Target() Target      { return a.target }

// IsLabel reports whether the action is a grouping placeholder created
// with InsertLabel.
func (a *Action) IsLabel() bool { return a.label }

// Shortcuts returns a copy of the current bindings.
func (a *Action) Shortcuts() keys.Set {
	return a.shortcuts.Clone()
}

// DefaultsNoMeta returns the defaults used on keyboards without a Meta key.
func (a *Action) DefaultsNoMeta() keys.Set { return a.defaultsNoMeta.Clone() }

// DefaultsWithMeta returns the defaults used on keyboards with a Meta key.
func (a *Action) DefaultsWithMeta() keys.Set { return a.defaultsWithMeta.Clone() }

// EffectiveDefaults picks the default set matching the current keyboard.
// The registry's meta probe is consulted on every call.
func (a *Action) EffectiveDefaults() keys.Set {
	d := a.defaultsNoMeta
	if a.reg != nil && a.reg.hasMeta() {
		d = a.defaultsWithMeta
	}
	return a.reg.expand(d)
}

// SetShortcuts replaces the current bindings and reconciles grabs.
func (a *Action) SetShortcuts(s keys.Set) {
	next := a.reg.expand(s)
	if next.Equal(a.shortcuts) {
		return
	}
	if m := a.manager(); m != nil && a.enabled {
		m.removeConnection(a)
		a.shortcuts = next
		m.insertConnection(a)
		return
	}
	a.shortcuts = next
}

// SetEnabled turns the action on or off. Disabling releases its keys.
func (a *Action) SetEnabled(enabled bool) {
	if a.enabled == enabled || a.label {
		return
	}
	m := a.manager()
	if m == nil {
		a.enabled = enabled
		return
	}
	if enabled {
		a.enabled = true
		m.insertConnection(a)
		return
	}
	m.removeConnection(a)
	a.enabled = false
}

func (a *Action) SetDescription(description string) {
	a.description = description
}

func (a *Action) SetTarget(t Target) {
	a.target = t
}

// manager returns the connection manager watching the owning registry.
// Removed actions have none.
func (a *Action) manager() *Manager {
	if a.reg == nil {
		return nil
	}
	return a.reg.mgr
}

// matching returns the shortcuts whose first keystroke includes c, in
// slot order.
func (a *Action) matching(c keys.Combo) []keys.Shortcut {
	var out []keys.Shortcut
	for _, sc := range a.shortcuts {
		for _, k := range sc.First() {
			if k == c {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}

func (a *Action) activate(s keys.Shortcut) bool {
	if a.target == nil || !a.enabled {
		return false
	}
	a.target.invoke(a, s)
	return true
}
