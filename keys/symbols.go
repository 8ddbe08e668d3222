package keys

import (
	"fmt"
	"strings"
)

// Sym is a platform-independent key name. Values are always in the
// canonical spelling of the symbol table (e.g. "F2", "Asterisk", "KP_8").
type Sym string

const (
	SymEscape    Sym = "Escape"
	SymTab       Sym = "Tab"
	SymBacktab   Sym = "Backtab"
	SymBackspace Sym = "Backspace"
	SymReturn    Sym = "Return"
	SymEnter     Sym = "Enter"
	SymInsert    Sym = "Insert"
	SymDelete    Sym = "Delete"
	SymPause     Sym = "Pause"
	SymPrint     Sym = "Print"
	SymSysReq    Sym = "SysReq"
	SymHome      Sym = "Home"
	SymEnd       Sym = "End"
	SymLeft      Sym = "Left"
	SymUp        Sym = "Up"
	SymRight     Sym = "Right"
	SymDown      Sym = "Down"
	SymPageUp    Sym = "PageUp"
	SymPageDown  Sym = "PageDown"
	SymSpace     Sym = "Space"
	SymMenu      Sym = "Menu"
	SymPlus      Sym = "Plus"
	SymAsterisk  Sym = "Asterisk"
	SymMinus     Sym = "Minus"
	SymSlash     Sym = "Slash"
	SymEqual     Sym = "Equal"
	SymPeriod    Sym = "Period"
)

// Keypad symbols.
const (
	SymKPMultiply Sym = "KP_Multiply"
	SymKPAdd      Sym = "KP_Add"
	SymKPSubtract Sym = "KP_Subtract"
	SymKPDivide   Sym = "KP_Divide"
	SymKPDecimal  Sym = "KP_Decimal"
	SymKPEnter    Sym = "KP_Enter"
)

var fixedSymbols = []Sym{
	SymEscape, SymTab, SymBacktab, SymBackspace, SymReturn, SymEnter,
	SymInsert, SymDelete, SymPause, SymPrint, SymSysReq,
	SymHome, SymEnd, SymLeft, SymUp, SymRight, SymDown, SymPageUp, SymPageDown,
	"CapsLock", "NumLock", "ScrollLock", SymSpace, SymMenu, "Help",

	"Exclam", "QuoteDbl", "NumberSign", "Dollar", "Percent", "Ampersand",
	"Apostrophe", "ParenLeft", "ParenRight", SymAsterisk, SymPlus, "Comma",
	SymMinus, SymPeriod, SymSlash, "Colon", "Semicolon", "Less", SymEqual,
	"Greater", "Question", "At", "BracketLeft", "Backslash", "BracketRight",
	"AsciiCircum", "Underscore", "QuoteLeft", "BraceLeft", "Bar", "BraceRight",
	"AsciiTilde",

	SymKPMultiply, SymKPAdd, SymKPSubtract, SymKPDivide, SymKPDecimal, SymKPEnter,

	"VolumeUp", "VolumeDown", "VolumeMute", "MediaPlay", "MediaStop",
	"MediaPrevious", "MediaNext", "MediaRecord", "HomePage", "Favorites",
	"Search", "Standby", "OpenUrl", "LaunchMail", "LaunchMedia",
	"MonBrightnessUp", "MonBrightnessDown", "Calculator", "Sleep", "WakeUp",
}

// symAliases are accepted when parsing but never emitted.
var symAliases = map[string]Sym{
	"esc":      SymEscape,
	"del":      SymDelete,
	"ins":      SymInsert,
	"prior":    SymPageUp,
	"pgup":     SymPageUp,
	"next":     SymPageDown,
	"pgdown":   SymPageDown,
	"pgdn":     SymPageDown,
	"spacebar": SymSpace,
	"sys_req":  SymSysReq,
	"kp_enter": SymKPEnter,
}

// charSyms maps single printable characters to their symbol names so
// that "Ctrl+*" and "Ctrl+Asterisk" parse identically.
var charSyms = map[rune]Sym{
	'!': "Exclam", '"': "QuoteDbl", '#': "NumberSign", '$': "Dollar",
	'%': "Percent", '&': "Ampersand", '\'': "Apostrophe", '(': "ParenLeft",
	')': "ParenRight", '*': SymAsterisk, '+': SymPlus, ',': "Comma",
	'-': SymMinus, '.': SymPeriod, '/': SymSlash, ':': "Colon",
	';': "Semicolon", '<': "Less", '=': SymEqual, '>': "Greater",
	'?': "Question", '@': "At", '[': "BracketLeft", '\\': "Backslash",
	']': "BracketRight", '^': "AsciiCircum", '_': "Underscore",
	'`': "QuoteLeft", '{': "BraceLeft", '|': "Bar", '}': "BraceRight",
	'~': "AsciiTilde", ' ': SymSpace,
}

var (
	symbols    []Sym
	symByLower map[string]Sym
)

func init() {
	symbols = make([]Sym, 0, 160)
	for c := 'A'; c <= 'Z'; c++ {
		symbols = append(symbols, Sym(string(c)))
	}
	for c := '0'; c <= '9'; c++ {
		symbols = append(symbols, Sym(string(c)))
	}
	for i := 1; i <= 35; i++ {
		symbols = append(symbols, Sym(fmt.Sprintf("F%d", i)))
	}
	for c := '0'; c <= '9'; c++ {
		symbols = append(symbols, Sym("KP_"+string(c)))
	}
	symbols = append(symbols, fixedSymbols...)

	symByLower = make(map[string]Sym, len(symbols)+len(symAliases))
	for _, s := range symbols {
		symByLower[strings.ToLower(string(s))] = s
	}
	for alias, s := range symAliases {
		symByLower[alias] = s
	}
}

// LookupSym resolves a key name, alias or single printable character to
// its canonical symbol. Lookup is case-insensitive.
func LookupSym(name string) (Sym, bool) {
	if r := []rune(name); len(r) == 1 {
		if s, ok := charSyms[r[0]]; ok {
			return s, true
		}
	}
	s, ok := symByLower[strings.ToLower(name)]
	return s, ok
}

// Symbols returns every canonical symbol in table order.
func Symbols() []Sym {
	out := make([]Sym, len(symbols))
	copy(out, symbols)
	return out
}
