package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one signal on C, delivered
// once no trigger has arrived for the configured delay.
type Debouncer struct {
	delay time.Duration
	timer *time.Timer
	mutex sync.Mutex
	c     chan struct{}
}

// New creates a new debouncer with the specified delay
func New(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay: delay,
		c:     make(chan struct{}, 1),
	}
}

// C delivers a value after each settled burst. At most one signal is
// buffered.
func (d *Debouncer) C() <-chan struct{} {
	return d.c
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mutex.Lock()
		// A later Trigger or Cancel replaced this timer.
		if d.timer != timer {
			d.mutex.Unlock()
			return
		}
		d.timer = nil
		d.mutex.Unlock()
		d.signal()
	})
	d.timer = timer
}

func (d *Debouncer) signal() {
	select {
	case d.c <- struct{}{}:
	default:
	}
}

// Cancel stops any pending operation
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// IsActive returns true if there is a pending operation
func (d *Debouncer) IsActive() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.timer != nil
}
