//go:build linux || darwin || windows

// Package xhotkey grabs keys through golang.design/x/hotkey (X11, Cocoa or
// Win32). On macOS the caller must run inside mainthread.Init.
package xhotkey

import (
	"fmt"

	"golang.design/x/hotkey"

	"globalaccel/accel"
	"globalaccel/keys"
	"globalaccel/log"
)

var _ accel.Backend = (*Backend)(nil)

// Backend registers one OS hotkey per grabbed combo. Grab, Ungrab and
// Close must be called from the same goroutine; presses are delivered on
// Events.
type Backend struct {
	held   map[keys.Combo]*registration
	events chan keys.Combo
}

type registration struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

func New() (*Backend, error) {
	return &Backend{
		held:   make(map[keys.Combo]*registration),
		events: make(chan keys.Combo, 16),
	}, nil
}

// HasMetaKey reports whether the platform offers a Meta (Super, Win or
// Command) modifier.
func HasMetaKey() bool {
	_, ok := modifierMap[keys.ModMeta]
	return ok
}

func (b *Backend) Grab(c keys.Combo) bool {
	if _, ok := b.held[c]; ok {
		return true
	}
	mods, key, err := toHotkey(c)
	if err != nil {
		log.WarningLog.Printf("cannot grab %s: %v", c, err)
		return false
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		log.WarningLog.Printf("failed to register %s: %v", c, err)
		return false
	}

	reg := &registration{hk: hk, done: make(chan struct{})}
	b.held[c] = reg
	go b.forward(c, reg)
	return true
}

// forward relays key presses of one registration until it is released.
func (b *Backend) forward(c keys.Combo, reg *registration) {
	keydown := reg.hk.Keydown()
	for {
		select {
		case <-reg.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			select {
			case b.events <- c:
			case <-reg.done:
				return
			}
		}
	}
}

func (b *Backend) Ungrab(c keys.Combo) {
	reg, ok := b.held[c]
	if !ok {
		return
	}
	delete(b.held, c)
	close(reg.done)
	if err := reg.hk.Unregister(); err != nil {
		log.WarningLog.Printf("failed to unregister %s: %v", c, err)
	}
}

// Events delivers the combo of every grabbed key that is pressed.
func (b *Backend) Events() <-chan keys.Combo {
	return b.events
}

// Close releases every registration.
func (b *Backend) Close() error {
	for c := range b.held {
		b.Ungrab(c)
	}
	return nil
}

func toHotkey(c keys.Combo) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := keyMap[c.Sym]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported key: %s", c.Sym)
	}
	var mods []hotkey.Modifier
	for _, m := range []keys.Modifier{keys.ModShift, keys.ModCtrl, keys.ModAlt, keys.ModMeta} {
		if !c.Mods.Has(m) {
			continue
		}
		hm, ok := modifierMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("unsupported modifier: %s", m)
		}
		mods = append(mods, hm)
	}
	return mods, key, nil
}
