package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSetStructure(t *testing.T) {
	set, err := ParseSet("Meta+X,Asterisk;Alt+F2")
	require.NoError(t, err)
	require.Len(t, set, 2)

	require.Len(t, set[0], 2)
	assert.Equal(t, Variant{{Sym: "X", Mods: ModMeta}}, set[0][0])
	assert.Equal(t, Variant{{Sym: SymAsterisk}}, set[0][1])

	require.Len(t, set[1], 1)
	assert.Equal(t, Variant{{Sym: "F2", Mods: ModAlt}}, set[1][0])

	assert.Equal(t, "Meta+X,Asterisk;Alt+F2", set.String())
}

func TestParseSetNone(t *testing.T) {
	for _, text := range []string{"none", "NONE", "", "   "} {
		set, err := ParseSet(text)
		require.NoError(t, err, text)
		assert.True(t, set.IsEmpty(), text)
	}
}

func TestParseSetErrors(t *testing.T) {
	for _, text := range []string{"Ctrl+P;", "Ctrl+P,,X", "Super+Q", "Ctrl+Nope"} {
		_, err := ParseSet(text)
		assert.Error(t, err, text)
	}
}

func TestParseSetRoundTrip(t *testing.T) {
	inputs := []string{
		"Ctrl+P",
		"Ctrl+P;Alt+Print",
		"Meta+I,I",
		"Meta+Alt+Ctrl+Shift+F35;KP_Multiply,Plus",
		"ctrl+alt+f2;win+e",
		"Ctrl++;Shift+Asterisk",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			s := MustParseSet(in)
			again, err := ParseSet(s.String())
			require.NoError(t, err)
			assert.True(t, s.Equal(again), "%q -> %q", in, s.String())
		})
	}
}

func TestFormatWithDefaults(t *testing.T) {
	defaults := MustParseSet("Ctrl+P;Alt+P")

	// Primary matches its default, alternate does not.
	s := MustParseSet("Ctrl+P;Alt+Shift+P")
	assert.Equal(t, "default(Ctrl+P);Alt+Shift+P", s.Format(Internal, defaults))

	// Slots are compared positionally.
	swapped := MustParseSet("Alt+P;Ctrl+P")
	assert.Equal(t, "Alt+P;Ctrl+P", swapped.Format(Internal, defaults))

	// A default marker parses to the same value.
	parsed, err := ParseSet(s.Format(Internal, defaults))
	require.NoError(t, err)
	assert.True(t, s.Equal(parsed))

	chord := MustParseSet("Meta+X,Asterisk")
	text := chord.Format(Internal, chord)
	assert.Equal(t, "default(Meta+X,Asterisk)", text)
	parsed, err = ParseSet(text)
	require.NoError(t, err)
	assert.True(t, chord.Equal(parsed))

	// Segment level markers are accepted as well.
	parsed, err = ParseSet("default(Meta+X),default(Asterisk)")
	require.NoError(t, err)
	assert.True(t, chord.Equal(parsed))
}

func TestEqualityIsOrderSensitive(t *testing.T) {
	a := MustParseSet("Ctrl+A;Ctrl+B")
	b := MustParseSet("Ctrl+B;Ctrl+A")
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a.Clone()))

	v1 := Variant{{Sym: "8"}, {Sym: "KP_8"}}
	v2 := Variant{{Sym: "KP_8"}, {Sym: "8"}}
	assert.False(t, v1.Equal(v2))
}

func TestSetContains(t *testing.T) {
	set := MustParseSet("Ctrl+P;Meta+I,I")
	assert.True(t, set.Contains(MustParseShortcut("Meta+I,I")))
	assert.False(t, set.Contains(MustParseShortcut("Meta+I")))
	assert.Equal(t, 1, set.Index(MustParseShortcut("Meta+I,I")))
}

func TestSetExpand(t *testing.T) {
	set := MustParseSet("Asterisk;Ctrl+8")
	expanded := set.Expand(USKeypad)

	require.Len(t, expanded, 2)
	assert.Len(t, expanded[0][0], 3)
	assert.Len(t, expanded[1][0], 1)

	// Expansion never changes the persisted form.
	assert.Equal(t, set.String(), expanded.String())
	// The source is untouched.
	assert.Len(t, set[0][0], 1)
}

func TestCloneIsDeep(t *testing.T) {
	set := MustParseSet("Ctrl+A")
	c := set.Clone()
	c[0][0][0] = MustParseCombo("Ctrl+B")
	assert.Equal(t, "Ctrl+A", set.String())
}

func TestFromKeyMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
		ok   bool
	}{
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlA}, "Ctrl+A", true},
		{"upper rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'P'}}, "Shift+P", true},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, "Alt+X", true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "Return", true},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "Shift+Tab", true},
		{"function key", tea.KeyMsg{Type: tea.KeyF5}, "F5", true},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc"), Paste: true}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := FromKeyMsg(tt.msg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, c.String())
			}
		})
	}
}
