package keys

// Expander turns a combo into the full list of physical encodings of the
// same keystroke. Which alternates exist depends on the keyboard layout,
// so the table is supplied by the platform and never hardcoded in the
// resolver.
type Expander interface {
	Expand(Combo) Variant
}

type noExpansion struct{}

func (noExpansion) Expand(c Combo) Variant { return Variant{c} }

// NoExpansion maps every combo to itself.
var NoExpansion Expander = noExpansion{}

// Table is an Expander backed by a static map. Alternates are appended
// after the combo itself, in table order, without duplicates.
type Table map[Combo][]Combo

func (t Table) Expand(c Combo) Variant {
	v := Variant{c}
	for _, alt := range t[c] {
		dup := false
		for _, have := range v {
			if have == alt {
				dup = true
				break
			}
		}
		if !dup {
			v = append(v, alt)
		}
	}
	return v
}

// USKeypad is the sample table for a US layout with a numeric keypad.
var USKeypad = buildUSKeypad()

func buildUSKeypad() Table {
	t := Table{
		{Sym: SymAsterisk}: {{Sym: "8", Mods: ModShift}, {Sym: SymKPMultiply}},
		{Sym: SymPlus}:     {{Sym: SymEqual, Mods: ModShift}, {Sym: SymKPAdd}},
		{Sym: SymMinus}:    {{Sym: SymKPSubtract}},
		{Sym: SymSlash}:    {{Sym: SymKPDivide}},
		{Sym: SymPeriod}:   {{Sym: SymKPDecimal}},
		{Sym: SymEnter}:    {{Sym: SymKPEnter}},
	}
	for d := '0'; d <= '9'; d++ {
		t[Combo{Sym: Sym(string(d))}] = []Combo{{Sym: Sym("KP_" + string(d))}}
	}
	return t
}
