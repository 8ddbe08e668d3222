package backend

import (
	"sort"

	"globalaccel/accel"
	"globalaccel/keys"
)

var _ accel.Backend = (*Recorder)(nil)

// Op is the kind of a recorded backend call.
type Op int

const (
	OpGrab Op = iota
	OpUngrab
)

func (o Op) String() string {
	if o == OpUngrab {
		return "ungrab"
	}
	return "grab"
}

// Call is one Grab or Ungrab seen by a Recorder.
type Call struct {
	Op    Op
	Combo keys.Combo
	OK    bool
}

func (c Call) String() string {
	return c.Op.String() + " " + c.Combo.String()
}

// Recorder is an in-memory backend. It grabs anything it is not told to
// refuse and keeps a log of every call. It is used for dry runs and tests.
// Only Press may be called from another goroutine.
type Recorder struct {
	calls  []Call
	held   map[keys.Combo]bool
	refuse map[keys.Combo]bool
	events chan keys.Combo
}

func NewRecorder() *Recorder {
	return &Recorder{
		held:   make(map[keys.Combo]bool),
		refuse: make(map[keys.Combo]bool),
		events: make(chan keys.Combo, 16),
	}
}

// Press queues a key press on Events as if c had been typed. Like a real
// keyboard, it does not check whether c is grabbed.
func (r *Recorder) Press(c keys.Combo) {
	r.events <- c
}

// Events delivers the combos passed to Press.
func (r *Recorder) Events() <-chan keys.Combo {
	return r.events
}

// Close is a no-op; it lets the recorder stand in for a platform backend.
func (r *Recorder) Close() error {
	return nil
}

// Refuse makes future grabs of the given combos fail.
func (r *Recorder) Refuse(combos ...keys.Combo) {
	for _, c := range combos {
		r.refuse[c] = true
	}
}

// Allow undoes Refuse.
func (r *Recorder) Allow(combos ...keys.Combo) {
	for _, c := range combos {
		delete(r.refuse, c)
	}
}

func (r *Recorder) Grab(c keys.Combo) bool {
	ok := !r.refuse[c]
	r.calls = append(r.calls, Call{Op: OpGrab, Combo: c, OK: ok})
	if ok {
		r.held[c] = true
	}
	return ok
}

func (r *Recorder) Ungrab(c keys.Combo) {
	r.calls = append(r.calls, Call{Op: OpUngrab, Combo: c, OK: r.held[c]})
	delete(r.held, c)
}

// Calls returns the calls made since the last Reset.
func (r *Recorder) Calls() []Call {
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets the recorded calls but not the held keys.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Held returns the currently grabbed combos, sorted.
func (r *Recorder) Held() []keys.Combo {
	out := make([]keys.Combo, 0, len(r.held))
	for c := range r.held {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Holds reports whether c is currently grabbed.
func (r *Recorder) Holds(c keys.Combo) bool {
	return r.held[c]
}
