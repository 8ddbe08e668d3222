package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalaccel/keys"
)

func TestInsertActionRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	first := insert(r, "Print", "Ctrl+P", nil)

	a, ok := r.InsertAction("Print", "other", set("Alt+P"), set("Alt+P"), nil, true, true)
	assert.False(t, ok)
	assert.Nil(t, a)
	assert.Equal(t, 1, r.Len())
	assert.Same(t, first, r.Action("Print"))
	assert.Equal(t, "Ctrl+P", r.Action("Print").Shortcuts().String())

	_, ok = r.InsertLabel("Print", "header")
	assert.False(t, ok)
}

func TestEffectiveDefaultsFollowMetaProbe(t *testing.T) {
	meta := false
	r := NewRegistry(WithMetaProbe(func() bool { return meta }))
	a, ok := r.InsertAction("Run", "Run command", set("Alt+F2"), set("Meta+R"), nil, true, true)
	require.True(t, ok)

	assert.Equal(t, "Alt+F2", a.Shortcuts().String())
	assert.Equal(t, "Alt+F2", a.EffectiveDefaults().String())

	meta = true
	assert.Equal(t, "Meta+R", a.EffectiveDefaults().String())
	// Current bindings are not reset by a capability change.
	assert.Equal(t, "Alt+F2", a.Shortcuts().String())
}

func TestInsertLabel(t *testing.T) {
	r := NewRegistry()
	l, ok := r.InsertLabel("Windows", "Window management")
	require.True(t, ok)

	assert.True(t, l.IsLabel())
	assert.False(t, l.Enabled())
	assert.False(t, l.Configurable())
	assert.Nil(t, l.Target())
	assert.True(t, l.Shortcuts().IsEmpty())

	// Labels cannot be switched on.
	l.SetEnabled(true)
	assert.False(t, l.Enabled())
}

func TestRemoveAction(t *testing.T) {
	r := NewRegistry()
	insert(r, "A", "Ctrl+A", nil)
	insert(r, "B", "Ctrl+B", nil)

	assert.False(t, r.RemoveAction("missing"))
	assert.True(t, r.RemoveAction("A"))
	assert.Nil(t, r.Action("A"))
	require.Len(t, r.Actions(), 1)
	assert.Equal(t, "B", r.Actions()[0].Name())

	// The name is free again.
	_, ok := r.InsertAction("A", "", nil, nil, nil, true, true)
	assert.True(t, ok)
}

func TestActionFor(t *testing.T) {
	r := NewRegistry()
	insert(r, "Print", "Ctrl+P", nil)
	insert(r, "Invert", "Meta+I,I;Alt+I", nil)
	insert(r, "Shadow", "Alt+I", nil)

	assert.Equal(t, "Print", r.ActionFor(keys.MustParseShortcut("Ctrl+P")).Name())
	assert.Equal(t, "Invert", r.ActionFor(keys.MustParseShortcut("Meta+I,I")).Name())
	// First in registry order wins.
	assert.Equal(t, "Invert", r.ActionFor(keys.MustParseShortcut("Alt+I")).Name())
	// Containment is by whole shortcut, not by key.
	assert.Nil(t, r.ActionFor(keys.MustParseShortcut("Meta+I")))
}

func TestActionForExpandsQuery(t *testing.T) {
	r := NewRegistry(WithExpander(keys.USKeypad))
	insert(r, "Multiply", "Asterisk", nil)

	assert.Equal(t, "Multiply", r.ActionFor(keys.MustParseShortcut("Asterisk")).Name())
}

func TestDetectConflicts(t *testing.T) {
	r := NewRegistry()
	insert(r, "Print", "Ctrl+P", nil)
	insert(r, "Purge", "Ctrl+P;Ctrl+Shift+P", nil)
	insert(r, "Paste", "Ctrl+V;Ctrl+Shift+P", nil)
	insert(r, "Twice", "Ctrl+T;Ctrl+T", nil)
	off := insert(r, "Off", "Ctrl+V", nil)
	off.SetEnabled(false)

	conflicts := r.DetectConflicts()
	require.Len(t, conflicts, 2)

	assert.Equal(t, "Ctrl+P", conflicts[0].Combo.String())
	require.Len(t, conflicts[0].Actions, 2)
	assert.Equal(t, "Print", conflicts[0].Actions[0].Name())
	assert.Equal(t, "Purge", conflicts[0].Actions[1].Name())

	assert.Equal(t, "Ctrl+Shift+P", conflicts[1].Combo.String())
	assert.Equal(t, "Purge", conflicts[1].Actions[0].Name())
	assert.Equal(t, "Paste", conflicts[1].Actions[1].Name())
}

func TestSetShortcutsExpands(t *testing.T) {
	r := NewRegistry(WithExpander(keys.USKeypad))
	a := insert(r, "Digit", "Ctrl+1", nil)

	a.SetShortcuts(set("8"))
	got := a.Shortcuts()
	require.Len(t, got, 1)
	assert.Equal(t, keys.Variant{combo("8"), combo("KP_8")}, got[0][0])
	assert.Equal(t, "8", got.String())
}

func TestRegistryString(t *testing.T) {
	r := NewRegistry()
	r.InsertLabel("Group", "Window keys")
	insert(r, "Close", "Alt+F4", nil)

	s := r.String()
	assert.Contains(t, s, "[Group] Window keys")
	assert.Contains(t, s, "Close (on): Alt+F4")
}
