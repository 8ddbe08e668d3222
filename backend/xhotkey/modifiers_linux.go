//go:build linux

package xhotkey

import (
	"golang.design/x/hotkey"

	"globalaccel/keys"
)

// X11: Alt is Mod1 and Super is Mod4 on common layouts.
var modifierMap = map[keys.Modifier]hotkey.Modifier{
	keys.ModShift: hotkey.ModShift,
	keys.ModCtrl:  hotkey.ModCtrl,
	keys.ModAlt:   hotkey.Mod1,
	keys.ModMeta:  hotkey.Mod4,
}
