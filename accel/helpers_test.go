package accel

import (
	"errors"

	"globalaccel/keys"
)

// fakeBackend records grab traffic and can be told to refuse combos.
type fakeBackend struct {
	calls   []string
	held    map[keys.Combo]bool
	refuse  map[keys.Combo]bool
	doubles int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		held:   make(map[keys.Combo]bool),
		refuse: make(map[keys.Combo]bool),
	}
}

func (b *fakeBackend) Grab(c keys.Combo) bool {
	b.calls = append(b.calls, "grab "+c.String())
	if b.refuse[c] {
		return false
	}
	if b.held[c] {
		b.doubles++
	}
	b.held[c] = true
	return true
}

func (b *fakeBackend) Ungrab(c keys.Combo) {
	b.calls = append(b.calls, "ungrab "+c.String())
	delete(b.held, c)
}

func (b *fakeBackend) reset() {
	b.calls = nil
}

// memStore is an in-memory Store.
type memStore struct {
	entries map[string]string
	writes  []string
	flags   []WriteFlags
	syncs   int
	syncErr error
}

func newMemStore(entries map[string]string) *memStore {
	if entries == nil {
		entries = make(map[string]string)
	}
	return &memStore{entries: entries}
}

func (s *memStore) ReadEntry(group, key string) (string, bool) {
	v, ok := s.entries[group+"/"+key]
	return v, ok
}

func (s *memStore) WriteEntry(group, key, value string, flags WriteFlags) {
	s.entries[group+"/"+key] = value
	s.writes = append(s.writes, key+"="+value)
	s.flags = append(s.flags, flags)
}

func (s *memStore) Sync() error {
	s.syncs++
	return s.syncErr
}

var errSync = errors.New("disk full")

func set(text string) keys.Set {
	return keys.MustParseSet(text)
}

func combo(text string) keys.Combo {
	return keys.MustParseCombo(text)
}

// insert registers a configurable, enabled action with the same defaults
// for both keyboard kinds.
func insert(r *Registry, name, shortcuts string, target Target) *Action {
	a, ok := r.InsertAction(name, name+" description", set(shortcuts), set(shortcuts), target, true, true)
	if !ok {
		panic("duplicate action " + name)
	}
	return a
}

// owners renders the active map as combo -> action name.
func owners(m *Manager) map[string]string {
	out := make(map[string]string)
	for k, a := range m.Bindings() {
		out[k.String()] = a.Name()
	}
	return out
}
