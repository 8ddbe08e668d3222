package keys

import (
	"fmt"
	"strings"
)

// Modifier is a bitset of the modifier keys held during a keystroke.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// modifierOrder is the order modifiers are written in.
var modifierOrder = []Modifier{ModMeta, ModAlt, ModCtrl, ModShift}

var modifierNames = map[Modifier]string{
	ModShift: "Shift",
	ModCtrl:  "Ctrl",
	ModAlt:   "Alt",
	ModMeta:  "Meta",
}

var modifierByName = map[string]Modifier{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
	"win":   ModMeta,
}

// Has reports whether every bit of o is set in m.
func (m Modifier) Has(o Modifier) bool {
	return m&o == o
}

func (m Modifier) String() string {
	var parts []string
	for _, mod := range modifierOrder {
		if m.Has(mod) {
			parts = append(parts, modifierNames[mod])
		}
	}
	return strings.Join(parts, "+")
}

// Combo is one physical key press plus the modifiers held with it.
// Two combos are equal iff their symbol and modifier set are equal, so a
// Combo can be used directly as a map key.
type Combo struct {
	Sym  Sym
	Mods Modifier
}

// NewCombo builds a combo from an already canonical symbol.
func NewCombo(sym Sym, mods Modifier) Combo {
	return Combo{Sym: sym, Mods: mods}
}

// IsZero reports whether c is the empty "no key" combo.
func (c Combo) IsZero() bool {
	return c.Sym == ""
}

func (c Combo) String() string {
	return c.Format(Internal)
}

// Format renders the combo using the names provided by n.
func (c Combo) Format(n Namer) string {
	if c.IsZero() {
		return ""
	}
	var sb strings.Builder
	for _, mod := range modifierOrder {
		if c.Mods.Has(mod) {
			sb.WriteString(n.ModifierName(mod))
			sb.WriteByte('+')
		}
	}
	sb.WriteString(n.SymName(c.Sym))
	return sb.String()
}

// Less orders combos by symbol, then modifiers.
func (c Combo) Less(o Combo) bool {
	if c.Sym != o.Sym {
		return c.Sym < o.Sym
	}
	return c.Mods < o.Mods
}

// ParseError reports a shortcut string that does not follow the grammar.
type ParseError struct {
	Text   string // the text being parsed
	Token  string // the offending token, if any
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid shortcut %q: %s %q", e.Text, e.Reason, e.Token)
	}
	return fmt.Sprintf("invalid shortcut %q: %s", e.Text, e.Reason)
}

const defaultPrefix = "default("

// unwrapDefault strips a surrounding default(...) marker. The marker only
// counts when it encloses the whole text.
func unwrapDefault(s string) (string, bool) {
	if len(s) < len(defaultPrefix)+1 || !strings.HasSuffix(s, ")") {
		return s, false
	}
	if !strings.EqualFold(s[:len(defaultPrefix)], defaultPrefix) {
		return s, false
	}
	inner := s[len(defaultPrefix) : len(s)-1]
	if strings.ContainsAny(inner, "()") {
		return s, false
	}
	return strings.TrimSpace(inner), true
}

// ParseCombo parses a single keystroke such as "Ctrl+Alt+F2". Modifier and
// symbol names are case-insensitive, "Win" is accepted for Meta and
// "Ctrl++" names the plus key.
func ParseCombo(text string) (Combo, error) {
	s := strings.TrimSpace(text)
	s, _ = unwrapDefault(s)
	if s == "" {
		return Combo{}, &ParseError{Text: text, Reason: "empty key"}
	}

	parts := strings.Split(s, "+")
	var mods Modifier
	i := 0
	for ; i < len(parts); i++ {
		m, ok := modifierByName[strings.ToLower(strings.TrimSpace(parts[i]))]
		if !ok {
			break
		}
		mods |= m
	}

	rest := parts[i:]
	var name string
	switch {
	case len(rest) == 1 && strings.TrimSpace(rest[0]) != "":
		name = strings.TrimSpace(rest[0])
	case len(rest) == 2 && rest[0] == "" && rest[1] == "":
		name = "+"
	case len(rest) == 0:
		return Combo{}, &ParseError{Text: text, Reason: "missing key symbol"}
	default:
		return Combo{}, &ParseError{Text: text, Token: strings.TrimSpace(rest[0]), Reason: "unknown modifier"}
	}

	sym, ok := LookupSym(name)
	if !ok {
		return Combo{}, &ParseError{Text: text, Token: name, Reason: "unknown key symbol"}
	}
	return Combo{Sym: sym, Mods: mods}, nil
}

// MustParseCombo is like ParseCombo but panics on error. Intended for
// static tables and tests.
func MustParseCombo(text string) Combo {
	c, err := ParseCombo(text)
	if err != nil {
		panic(err)
	}
	return c
}
