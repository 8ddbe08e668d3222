package keys

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Namer supplies display names for modifiers and symbols.
type Namer interface {
	ModifierName(Modifier) string
	SymName(Sym) string
}

type internalNamer struct{}

func (internalNamer) ModifierName(m Modifier) string { return modifierNames[m] }
func (internalNamer) SymName(s Sym) string           { return string(s) }

// Internal is the locale-independent namer used for persistence.
var Internal Namer = internalNamer{}

// localized key names; anything missing falls back to the internal name.
var translations = map[language.Tag]map[string]string{
	language.German: {
		"Ctrl":      "Strg",
		"Shift":     "Umschalt",
		"Escape":    "Esc",
		"Return":    "Eingabe",
		"Enter":     "Enter",
		"Insert":    "Einfg",
		"Delete":    "Entf",
		"Home":      "Pos1",
		"End":       "Ende",
		"PageUp":    "Bild auf",
		"PageDown":  "Bild ab",
		"Space":     "Leertaste",
		"Backspace": "Rücktaste",
		"Print":     "Druck",
		"Left":      "Links",
		"Right":     "Rechts",
		"Up":        "Oben",
		"Down":      "Unten",
		"Asterisk":  "Stern",
		"Plus":      "Plus",
		"Minus":     "Minus",
	},
	language.French: {
		"Shift":     "Maj",
		"Escape":    "Échap",
		"Return":    "Entrée",
		"Insert":    "Inser",
		"Delete":    "Suppr",
		"Home":      "Début",
		"End":       "Fin",
		"PageUp":    "Page préc.",
		"PageDown":  "Page suiv.",
		"Space":     "Espace",
		"Backspace": "Retour arrière",
		"Print":     "Impr. écran",
		"Left":      "Gauche",
		"Right":     "Droite",
		"Up":        "Haut",
		"Down":      "Bas",
		"Asterisk":  "Astérisque",
	},
}

var keyCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// Message keys never contain formatting verbs, so SetString
			// cannot fail here.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

type localNamer struct {
	p *message.Printer
}

// NewLocalNamer returns a Namer producing user-facing names for tag.
func NewLocalNamer(tag language.Tag) Namer {
	return localNamer{p: message.NewPrinter(tag, message.Catalog(keyCatalog))}
}

func (n localNamer) ModifierName(m Modifier) string {
	return n.p.Sprintf(modifierNames[m])
}

func (n localNamer) SymName(s Sym) string {
	return n.p.Sprintf(string(s))
}
