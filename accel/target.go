package accel

import "globalaccel/keys"

// Target is what an action runs when one of its shortcuts completes. The
// set of implementations is closed: Call, CallInt and CallDetail.
type Target interface {
	invoke(a *Action, s keys.Shortcut)
}

// Call runs a function without arguments.
type Call func()

func (f Call) invoke(*Action, keys.Shortcut) {
	if f != nil {
		f()
	}
}

// CallInt runs Fn with a fixed integer argument, e.g. the desktop number
// of a "switch to desktop N" action.
type CallInt struct {
	Arg int
	Fn  func(int)
}

func (c CallInt) invoke(*Action, keys.Shortcut) {
	if c.Fn != nil {
		c.Fn(c.Arg)
	}
}

// CallDetail receives the action's name and description and the shortcut
// that was typed.
type CallDetail func(name, description string, s keys.Shortcut)

func (f CallDetail) invoke(a *Action, s keys.Shortcut) {
	if f != nil {
		f(a.name, a.description, s)
	}
}
