package accel

// Fleet groups the managers of one desktop session so that all shortcuts
// can be blocked at once, e.g. while a shortcut editor records keys.
type Fleet struct {
	managers []*Manager
	blocked  bool
}

func NewFleet() *Fleet {
	return &Fleet{}
}

func (f *Fleet) add(m *Manager) {
	f.managers = append(f.managers, m)
}

func (f *Fleet) remove(m *Manager) {
	for i, have := range f.managers {
		if have == m {
			f.managers = append(f.managers[:i], f.managers[i+1:]...)
			return
		}
	}
}

// BlockShortcuts disables (block) or re-enables every member manager.
// Managers joining while blocked start disabled.
func (f *Fleet) BlockShortcuts(block bool) {
	f.blocked = block
	for _, m := range f.managers {
		m.SetEnabled(!block)
	}
}

// Blocked reports the last BlockShortcuts state.
func (f *Fleet) Blocked() bool {
	return f.blocked
}

// Managers returns the current members in registration order.
func (f *Fleet) Managers() []*Manager {
	out := make([]*Manager, len(f.managers))
	copy(out, f.managers)
	return out
}
