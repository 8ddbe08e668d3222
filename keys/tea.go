package keys

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// bubbletea key names that differ from ours.
var teaToSym = map[string]Sym{
	"enter":     SymReturn,
	"esc":       SymEscape,
	"pgup":      SymPageUp,
	"pgdown":    SymPageDown,
	" ":         SymSpace,
	"space":     SymSpace,
	"backspace": SymBackspace,
	"delete":    SymDelete,
	"insert":    SymInsert,
}

// FromKeyMsg converts a terminal key event into a Combo. Pasted text and
// multi-rune messages are rejected.
func FromKeyMsg(msg tea.KeyMsg) (Combo, bool) {
	if msg.Paste || (msg.Type == tea.KeyRunes && len(msg.Runes) != 1) {
		return Combo{}, false
	}
	s := msg.String()
	if s == "" {
		return Combo{}, false
	}
	if s == " " {
		return Combo{Sym: SymSpace}, true
	}

	var mods Modifier
	name := s
	for {
		lower := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lower, "ctrl+"):
			mods |= ModCtrl
			name = name[len("ctrl+"):]
			continue
		case strings.HasPrefix(lower, "alt+"):
			mods |= ModAlt
			name = name[len("alt+"):]
			continue
		case strings.HasPrefix(lower, "shift+"):
			mods |= ModShift
			name = name[len("shift+"):]
			continue
		}
		break
	}
	if name == "" {
		return Combo{}, false
	}

	if sym, ok := teaToSym[name]; ok {
		return Combo{Sym: sym, Mods: mods}, true
	}
	if r := []rune(name); len(r) == 1 && unicode.IsUpper(r[0]) {
		mods |= ModShift
	}
	sym, ok := LookupSym(name)
	if !ok {
		return Combo{}, false
	}
	return Combo{Sym: sym, Mods: mods}, true
}
