package accel

import (
	"fmt"
	"strings"

	"globalaccel/keys"
)

// Registry is the ordered collection of actions. Insertion order is
// significant: earlier actions win key conflicts.
//
// A Registry and the Manager attached to it are not safe for concurrent
// use. All calls are expected to come from one event loop goroutine.
type Registry struct {
	actions []*Action
	byName  map[string]*Action

	hasMeta  func() bool
	expander keys.Expander

	mgr *Manager
}

// Option configures a Registry.
type Option func(*Registry)

// WithMetaProbe sets the function reporting whether the keyboard has a
// Meta key. It is called every time effective defaults are needed.
func WithMetaProbe(probe func() bool) Option {
	return func(r *Registry) {
		if probe != nil {
			r.hasMeta = probe
		}
	}
}

// WithExpander sets the layout table used to fill in alternate encodings
// of each keystroke.
func WithExpander(e keys.Expander) Option {
	return func(r *Registry) {
		if e != nil {
			r.expander = e
		}
	}
}

// NewRegistry creates an empty registry. By default a Meta key is assumed
// and no alternate encodings are added.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byName:   make(map[string]*Action),
		hasMeta:  func() bool { return true },
		expander: keys.NoExpansion,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) expand(s keys.Set) keys.Set {
	if r == nil {
		return s.Clone()
	}
	return s.Expand(r.expander)
}

// InsertAction registers a new action whose current shortcuts are its
// effective defaults. It returns false and changes nothing if the name is
// already taken.
func (r *Registry) InsertAction(name, description string, defaultsNoMeta, defaultsWithMeta keys.Set,
	target Target, configurable, enabled bool) (*Action, bool) {
	if _, exists := r.byName[name]; exists {
		return nil, false
	}

	a := &Action{
		name:             name,
		description:      description,
		defaultsNoMeta:   defaultsNoMeta.Clone(),
		defaultsWithMeta: defaultsWithMeta.Clone(),
		configurable:     configurable,
		enabled:          enabled,
		target:           target,
		reg:              r,
	}
	a.shortcuts = a.EffectiveDefaults()

	r.actions = append(r.actions, a)
	r.byName[name] = a

	if r.mgr != nil {
		r.mgr.insertConnection(a)
	}
	return a, true
}

// InsertLabel registers a disabled, non-configurable placeholder used as
// a group header in listings.
func (r *Registry) InsertLabel(name, description string) (*Action, bool) {
	if _, exists := r.byName[name]; exists {
		return nil, false
	}
	a := &Action{
		name:        name,
		description: description,
		label:       true,
		reg:         r,
	}
	r.actions = append(r.actions, a)
	r.byName[name] = a
	return a, true
}

// RemoveAction releases the action's grabbed keys and then removes it.
func (r *Registry) RemoveAction(name string) bool {
	a, exists := r.byName[name]
	if !exists {
		return false
	}
	if r.mgr != nil {
		r.mgr.actionRemoved(a)
	}

	delete(r.byName, name)
	for i, have := range r.actions {
		if have == a {
			r.actions = append(r.actions[:i], r.actions[i+1:]...)
			break
		}
	}
	a.reg = nil
	return true
}

// Action returns the action with the given name, or nil.
func (r *Registry) Action(name string) *Action {
	return r.byName[name]
}

// ActionFor returns the first action, in registry order, whose current
// shortcuts contain s. The query is expanded the same way stored
// shortcuts are.
func (r *Registry) ActionFor(s keys.Shortcut) *Action {
	q := r.expand(keys.Set{s})
	if len(q) == 0 {
		return nil
	}
	for _, a := range r.actions {
		if a.shortcuts.Contains(q[0]) {
			return a
		}
	}
	return nil
}

// Actions returns the actions in registry order.
func (r *Registry) Actions() []*Action {
	out := make([]*Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Len returns the number of actions, labels included.
func (r *Registry) Len() int {
	return len(r.actions)
}

// Conflict is one combo requested by several enabled actions. Actions are
// listed in priority order, so Actions[0] is the one that gets the key.
type Conflict struct {
	Combo   keys.Combo
	Actions []*Action
}

// DetectConflicts lists every first-keystroke combo requested by more than
// one enabled action, ordered by the winner's priority.
func (r *Registry) DetectConflicts() []Conflict {
	var order []keys.Combo
	claims := make(map[keys.Combo][]*Action)
	for _, c := range r.candidates(nil) {
		owners, seen := claims[c.combo]
		if !seen {
			order = append(order, c.combo)
		}
		dup := false
		for _, a := range owners {
			if a == c.action {
				dup = true
				break
			}
		}
		if !dup {
			claims[c.combo] = append(owners, c.action)
		}
	}

	var conflicts []Conflict
	for _, combo := range order {
		if owners := claims[combo]; len(owners) > 1 {
			conflicts = append(conflicts, Conflict{Combo: combo, Actions: owners})
		}
	}
	return conflicts
}

// String returns a debug representation of the registry.
func (r *Registry) String() string {
	var sb strings.Builder
	sb.WriteString("Registry:\n")
	for _, a := range r.actions {
		if a.label {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", a.name, a.description))
			continue
		}
		state := "on"
		if !a.enabled {
			state = "off"
		}
		sb.WriteString(fmt.Sprintf("  %s (%s): %s\n", a.name, state, a.shortcuts))
	}
	return sb.String()
}
