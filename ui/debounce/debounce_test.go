package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func received(d *Debouncer, within time.Duration) bool {
	select {
	case <-d.C():
		return true
	case <-time.After(within):
		return false
	}
}

func TestTriggerCoalesces(t *testing.T) {
	d := New(30 * time.Millisecond)
	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.IsActive())

	assert.True(t, received(d, time.Second))
	assert.False(t, d.IsActive())
	assert.False(t, received(d, 80*time.Millisecond), "a burst yields one signal")
}

func TestCancel(t *testing.T) {
	d := New(20 * time.Millisecond)
	d.Trigger()
	d.Cancel()

	assert.False(t, d.IsActive())
	assert.False(t, received(d, 60*time.Millisecond))
}

func TestSignalsDoNotBlock(t *testing.T) {
	d := New(time.Hour)
	d.signal()
	d.signal()

	assert.True(t, received(d, 10*time.Millisecond))
	assert.False(t, received(d, 10*time.Millisecond))
}
