package accel

import (
	"globalaccel/keys"
	"globalaccel/log"
)

// WriteFlags is passed through to the store unchanged.
type WriteFlags struct {
	// Global selects the shared configuration scope instead of the local
	// override.
	Global bool
}

// Store persists one shortcut string per action name within a group.
type Store interface {
	ReadEntry(group, key string) (string, bool)
	WriteEntry(group, key, value string, flags WriteFlags)
	Sync() error
}

// ReadAll loads bindings for every action from store. "none" clears the
// action, any other value is parsed and assigned, and a missing or empty
// entry leaves the action as it is. Unparsable entries are logged and
// skipped.
func (r *Registry) ReadAll(store Store, group string) {
	for _, a := range r.Actions() {
		if a.label {
			continue
		}
		value, ok := store.ReadEntry(group, a.name)
		if !ok || value == "" {
			continue
		}
		set, err := keys.ParseSet(value)
		if err != nil {
			log.WarningLog.Printf("ignoring shortcut for %s: %v", a.name, err)
			continue
		}
		a.SetShortcuts(set)
	}
}

// LayeredStore is a Store whose entries come from stacked scopes, such
// as a local file over a shared one. ReadScope sees only the scope flags
// select; ReadBelow returns what the scopes beneath it would yield.
type LayeredStore interface {
	Store
	ReadScope(group, key string, flags WriteFlags) (string, bool)
	ReadBelow(group, key string, flags WriteFlags) (string, bool)
}

// WriteAll saves configurable actions to store and syncs it. Unless
// writeAll is set, actions still at their default are not written, and a
// leftover entry for such an action is erased with an empty value.
// Shortcuts equal to the default in the same slot are marked with
// default(...).
//
// With a LayeredStore, an action is only written when the selected scope
// would otherwise yield something else: values inherited from lower
// scopes are not copied up, and a default that a lower scope overrides
// is written explicitly.
func (r *Registry) WriteAll(store Store, group string, writeAll, global bool) error {
	flags := WriteFlags{Global: global}
	layered, _ := store.(LayeredStore)
	for _, a := range r.actions {
		if !a.configurable || a.label {
			continue
		}
		defaults := a.EffectiveDefaults()
		value := keys.NoneText
		if !a.shortcuts.IsEmpty() {
			value = a.shortcuts.Format(keys.Internal, defaults)
		}
		if writeAll {
			store.WriteEntry(group, a.name, value, flags)
			continue
		}

		inherited := defaults
		read := store.ReadEntry
		if layered != nil {
			inherited = r.inherited(layered, group, a, flags)
			read = func(group, key string) (string, bool) {
				return layered.ReadScope(group, key, flags)
			}
		}
		if !a.shortcuts.Equal(inherited) {
			store.WriteEntry(group, a.name, value, flags)
			continue
		}
		if old, ok := read(group, a.name); ok && old != "" {
			store.WriteEntry(group, a.name, "", flags)
		}
	}
	return store.Sync()
}

// inherited is what a would read back if the selected scope had no entry
// for it.
func (r *Registry) inherited(store LayeredStore, group string, a *Action, flags WriteFlags) keys.Set {
	value, ok := store.ReadBelow(group, a.name, flags)
	if !ok || value == "" {
		return a.EffectiveDefaults()
	}
	set, err := keys.ParseSet(value)
	if err != nil {
		return a.EffectiveDefaults()
	}
	return r.expand(set)
}
