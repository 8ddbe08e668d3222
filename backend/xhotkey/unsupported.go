//go:build !linux && !darwin && !windows

package xhotkey

import (
	"errors"
	"runtime"

	"globalaccel/keys"
)

var errUnsupported = errors.New("global hotkeys are not supported on " + runtime.GOOS)

// Backend is unavailable on this platform.
type Backend struct{}

func New() (*Backend, error) { return nil, errUnsupported }

func HasMetaKey() bool { return false }

func (*Backend) Grab(keys.Combo) bool      { return false }
func (*Backend) Ungrab(keys.Combo)         {}
func (*Backend) Events() <-chan keys.Combo { return nil }
func (*Backend) Close() error              { return nil }
