//go:build darwin

package xhotkey

import (
	"golang.design/x/hotkey"

	"globalaccel/keys"
)

var modifierMap = map[keys.Modifier]hotkey.Modifier{
	keys.ModShift: hotkey.ModShift,
	keys.ModCtrl:  hotkey.ModCtrl,
	keys.ModAlt:   hotkey.ModOption,
	keys.ModMeta:  hotkey.ModCmd,
}
