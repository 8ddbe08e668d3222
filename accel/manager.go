package accel

import (
	"globalaccel/keys"
	"globalaccel/log"
)

// Backend reserves key combos at the OS level.
type Backend interface {
	// Grab reserves c exclusively and reports whether it succeeded.
	Grab(c keys.Combo) bool
	Ungrab(c keys.Combo)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithAutoUpdate controls whether registry changes are applied right
// away. When off, changes take effect on the next UpdateConnections.
func WithAutoUpdate(auto bool) ManagerOption {
	return func(m *Manager) {
		m.autoUpdate = auto
	}
}

// WithFleet registers the manager with f, so that f.BlockShortcuts
// reaches it.
func WithFleet(f *Fleet) ManagerOption {
	return func(m *Manager) {
		m.fleet = f
	}
}

// Manager keeps the backend's grabbed keys in sync with a registry. It
// owns the active binding map: at most one action per combo.
type Manager struct {
	reg     *Registry
	backend Backend

	enabled    bool
	autoUpdate bool

	// active holds the combos currently grabbed.
	active map[keys.Combo]*Action
	// claims holds the resolved owner of every requested combo, including
	// those the backend refused to grab.
	claims map[keys.Combo]*Action
	// contested holds combos that more than one action asked for.
	contested map[keys.Combo]struct{}

	fleet *Fleet
	chord *chord
}

// chord tracks a multi-key shortcut whose first keystrokes have been typed.
type chord struct {
	action  *Action
	pos     int
	pending []keys.Shortcut
	// grabbed lists the temporary grabs for the next keystroke.
	grabbed []keys.Combo
}

// NewManager attaches a manager to reg and performs a full rebuild. A
// registry has at most one manager; a previous one is closed.
func NewManager(reg *Registry, backend Backend, opts ...ManagerOption) *Manager {
	m := &Manager{
		reg:        reg,
		backend:    backend,
		enabled:    true,
		autoUpdate: true,
		active:     make(map[keys.Combo]*Action),
		claims:     make(map[keys.Combo]*Action),
		contested:  make(map[keys.Combo]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if reg.mgr != nil {
		reg.mgr.Close()
	}
	reg.mgr = m
	if m.fleet != nil {
		m.fleet.add(m)
		if m.fleet.blocked {
			m.enabled = false
		}
	}

	m.rebuild(nil)
	return m
}

// Enabled reports whether the manager holds grabs.
func (m *Manager) Enabled() bool { return m.enabled }

// AutoUpdate reports whether registry changes are applied immediately.
func (m *Manager) AutoUpdate() bool { return m.autoUpdate }

// SetEnabled switches between holding no keys and holding a full
// resolution of the registry.
func (m *Manager) SetEnabled(enabled bool) {
	if m.enabled == enabled {
		return
	}
	m.enabled = enabled
	if enabled {
		m.rebuild(nil)
		return
	}
	m.releaseAll()
}

// SetAutoUpdate toggles immediate application of registry changes.
// Turning it back on rebuilds.
func (m *Manager) SetAutoUpdate(auto bool) {
	prev := m.autoUpdate
	m.autoUpdate = auto
	if auto && !prev {
		m.rebuild(nil)
	}
}

// UpdateConnections runs a full rebuild.
func (m *Manager) UpdateConnections() {
	m.rebuild(nil)
}

func (m *Manager) live() bool {
	return m.enabled && m.autoUpdate
}

// rebuild resolves every candidate by priority, then ungrabs what was
// lost and grabs what was won. exclude, if set, is treated as disabled.
func (m *Manager) rebuild(exclude *Action) {
	m.CancelChord()
	if !m.enabled {
		m.releaseAll()
		return
	}

	res := resolve(m.reg.candidates(exclude))
	for _, c := range res.lost {
		log.WarningLog.Printf("%s: %s is already taken by %s", c.action.name, c.combo, res.owners[c.combo].name)
	}

	for _, k := range sortedCombos(m.active) {
		if res.owners[k] != m.active[k] {
			m.backend.Ungrab(k)
			delete(m.active, k)
		}
	}
	for _, k := range res.order {
		a := res.owners[k]
		if m.active[k] == a {
			continue
		}
		m.grab(k, a)
	}

	m.claims = res.owners
	m.contested = res.contested
	log.InfoLog.Printf("rebuilt bindings: %d keys held, %d claims lost", len(m.active), len(res.lost))
}

func (m *Manager) grab(k keys.Combo, a *Action) bool {
	if !m.backend.Grab(k) {
		log.WarningLog.Printf("could not grab %s for %s", k, a.name)
		return false
	}
	m.active[k] = a
	return true
}

func (m *Manager) releaseAll() {
	m.CancelChord()
	for _, k := range sortedCombos(m.active) {
		m.backend.Ungrab(k)
	}
	m.active = make(map[keys.Combo]*Action)
	m.claims = make(map[keys.Combo]*Action)
	m.contested = make(map[keys.Combo]struct{})
}

// insertConnection grabs a's first-keystroke combos one by one. Any combo
// that is already claimed means priority has to be decided by a full
// rebuild.
func (m *Manager) insertConnection(a *Action) {
	if !m.live() || !a.enabled || a.label {
		return
	}
	m.CancelChord()
	for _, sc := range a.shortcuts {
		for _, k := range sc.First() {
			if k.IsZero() {
				continue
			}
			if _, taken := m.claims[k]; taken {
				m.rebuild(nil)
				return
			}
			m.claims[k] = a
			m.grab(k, a)
		}
	}
}

// removeConnection releases a's keys before it is disabled or rebound.
func (m *Manager) removeConnection(a *Action) {
	if !m.live() {
		return
	}
	m.release(a, true)
}

// actionRemoved releases a's keys unconditionally; a removed action must
// not keep a grab even while auto update is off.
func (m *Manager) actionRemoved(a *Action) {
	m.release(a, m.live())
}

// release drops every combo owned by a. When one of them was contested
// and handover is set, a rebuild without a gives it to the next claimant.
func (m *Manager) release(a *Action, handover bool) {
	m.CancelChord()
	freed := false
	for _, k := range sortedCombos(m.claims) {
		if m.claims[k] != a {
			continue
		}
		delete(m.claims, k)
		if m.active[k] == a {
			m.backend.Ungrab(k)
			delete(m.active, k)
		}
		if _, ok := m.contested[k]; ok {
			freed = true
		}
	}
	if freed && handover && m.enabled {
		m.rebuild(a)
	}
}

// Lookup returns the action currently holding c.
func (m *Manager) Lookup(c keys.Combo) (*Action, bool) {
	a, ok := m.active[c]
	return a, ok
}

// Bindings returns a copy of the active binding map.
func (m *Manager) Bindings() map[keys.Combo]*Action {
	out := make(map[keys.Combo]*Action, len(m.active))
	for k, a := range m.active {
		out[k] = a
	}
	return out
}

// Keys returns the grabbed combos in sorted order.
func (m *Manager) Keys() []keys.Combo {
	return sortedCombos(m.active)
}

// Activate handles a key press reported by the backend. It returns true
// when the key ran an action or advanced a chord.
func (m *Manager) Activate(c keys.Combo) bool {
	if !m.enabled {
		return false
	}
	if m.chord != nil {
		if m.advance(c) {
			return true
		}
		m.CancelChord()
	}

	a, ok := m.active[c]
	if !ok {
		return false
	}
	var chords []keys.Shortcut
	for _, sc := range a.matching(c) {
		if !sc.IsChord() {
			return a.activate(sc)
		}
		chords = append(chords, sc)
	}
	if len(chords) == 0 {
		return false
	}

	m.chord = &chord{action: a, pos: 1, pending: chords}
	m.grabNext()
	return true
}

func (m *Manager) advance(c keys.Combo) bool {
	st := m.chord
	var next []keys.Shortcut
	for _, sc := range st.pending {
		for _, k := range sc[st.pos] {
			if k == c {
				next = append(next, sc)
				break
			}
		}
	}
	if len(next) == 0 {
		return false
	}

	m.CancelChord()
	pos := st.pos + 1
	for _, sc := range next {
		if len(sc) == pos {
			st.action.activate(sc)
			return true
		}
	}
	m.chord = &chord{action: st.action, pos: pos, pending: next}
	m.grabNext()
	return true
}

// grabNext temporarily grabs the combos that can continue the chord.
// Combos already in the active map are delivered anyway.
func (m *Manager) grabNext() {
	st := m.chord
	for _, sc := range st.pending {
		for _, k := range sc[st.pos] {
			if k.IsZero() {
				continue
			}
			if _, ok := m.active[k]; ok || containsCombo(st.grabbed, k) {
				continue
			}
			if m.backend.Grab(k) {
				st.grabbed = append(st.grabbed, k)
			}
		}
	}
}

// ChordPending reports whether a multi-key shortcut is partially typed.
func (m *Manager) ChordPending() bool {
	return m.chord != nil
}

// CancelChord abandons a partially typed chord and releases the keys
// grabbed for it.
func (m *Manager) CancelChord() {
	if m.chord == nil {
		return
	}
	for _, k := range m.chord.grabbed {
		m.backend.Ungrab(k)
	}
	m.chord = nil
}

// Close releases every key and detaches the manager from its registry
// and fleet.
func (m *Manager) Close() {
	m.releaseAll()
	m.enabled = false
	if m.reg.mgr == m {
		m.reg.mgr = nil
	}
	if m.fleet != nil {
		m.fleet.remove(m)
		m.fleet = nil
	}
}

func containsCombo(list []keys.Combo, c keys.Combo) bool {
	for _, k := range list {
		if k == c {
			return true
		}
	}
	return false
}
