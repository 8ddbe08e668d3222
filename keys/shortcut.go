package keys

import (
	"strings"
)

// NoneText is the persisted form of an explicitly empty Set.
const NoneText = "none"

// Variant lists alternate encodings of one logical keystroke. Index 0 is
// authoritative; the rest are produced by an Expander (for instance the
// keypad copy of a digit). An empty Variant means "no key".
type Variant []Combo

// Primary returns the authoritative combo, or the zero Combo.
func (v Variant) Primary() Combo {
	if len(v) == 0 {
		return Combo{}
	}
	return v[0]
}

// Equal reports exact, order-sensitive equality.
func (v Variant) Equal(o Variant) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Shortcut is one activation sequence: one Variant per keystroke.
type Shortcut []Variant

// ParseShortcut parses a comma separated chord such as "Meta+I,I".
func ParseShortcut(text string) (Shortcut, error) {
	s := strings.TrimSpace(text)
	s, _ = unwrapDefault(s)
	if s == "" {
		return nil, &ParseError{Text: text, Reason: "empty shortcut"}
	}
	segments := strings.Split(s, ",")
	sc := make(Shortcut, 0, len(segments))
	for _, seg := range segments {
		c, err := ParseCombo(seg)
		if err != nil {
			return nil, err
		}
		sc = append(sc, Variant{c})
	}
	return sc, nil
}

// MustParseShortcut panics if text is not a valid shortcut.
func MustParseShortcut(text string) Shortcut {
	sc, err := ParseShortcut(text)
	if err != nil {
		panic(err)
	}
	return sc
}

// First returns the variant of the first keystroke.
func (s Shortcut) First() Variant {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// IsChord reports whether the shortcut spans more than one keystroke.
func (s Shortcut) IsChord() bool {
	return len(s) > 1
}

func (s Shortcut) Equal(o Shortcut) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (s Shortcut) String() string {
	return s.Format(Internal)
}

// Format writes the authoritative combo of each keystroke, comma separated.
func (s Shortcut) Format(n Namer) string {
	parts := make([]string, 0, len(s))
	for _, v := range s {
		parts = append(parts, v.Primary().Format(n))
	}
	return strings.Join(parts, ",")
}

// Set is the full binding of an action: primary, alternate, and so on.
type Set []Shortcut

// ParseSet parses the persisted form "Meta+X,Asterisk;Alt+F2". The text
// "none" and the empty string both yield an empty Set.
func ParseSet(text string) (Set, error) {
	s := strings.TrimSpace(text)
	if s == "" || strings.EqualFold(s, NoneText) {
		return nil, nil
	}
	items := strings.Split(s, ";")
	set := make(Set, 0, len(items))
	for _, item := range items {
		sc, err := ParseShortcut(item)
		if err != nil {
			return nil, err
		}
		set = append(set, sc)
	}
	return set, nil
}

// MustParseSet panics if text is not a valid shortcut set.
func MustParseSet(text string) Set {
	set, err := ParseSet(text)
	if err != nil {
		panic(err)
	}
	return set
}

// IsEmpty reports whether the set binds no key at all.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether sc is one of the set's shortcuts, compared
// structurally.
func (s Set) Contains(sc Shortcut) bool {
	return s.Index(sc) >= 0
}

// Index returns the slot of sc in the set, or -1.
func (s Set) Index(sc Shortcut) int {
	for i := range s {
		if s[i].Equal(sc) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for i, sc := range s {
		out[i] = make(Shortcut, len(sc))
		for j, v := range sc {
			out[i][j] = append(Variant(nil), v...)
		}
	}
	return out
}

func (s Set) String() string {
	return s.Format(Internal, nil)
}

// Format renders the set with n. Every shortcut that is structurally equal
// to the shortcut in the same slot of defaults is wrapped in default(...).
func (s Set) Format(n Namer, defaults Set) string {
	parts := make([]string, 0, len(s))
	for i, sc := range s {
		str := sc.Format(n)
		if i < len(defaults) && sc.Equal(defaults[i]) {
			str = defaultPrefix + str + ")"
		}
		parts = append(parts, str)
	}
	return strings.Join(parts, ";")
}

// Expand replaces every variant with the expansion of its primary combo.
func (s Set) Expand(e Expander) Set {
	if e == nil || s == nil {
		return s.Clone()
	}
	out := make(Set, len(s))
	for i, sc := range s {
		out[i] = make(Shortcut, len(sc))
		for j, v := range sc {
			if len(v) == 0 {
				continue
			}
			out[i][j] = e.Expand(v[0])
		}
	}
	return out
}
