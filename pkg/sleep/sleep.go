// Package sleep tracks idle time and toggles the display power state.
package sleep

import (
	"time"

	"github.com/itohio/pulseband/pkg/hw"
)

// Controller transitions the tracker between awake and sleeping based on
// interaction timestamps. While sleeping the main loop is expected to skip
// everything except wake-edge polling.
type Controller struct {
	display hw.Display
	buzzer  hw.Buzzer

	idleTimeout     time.Duration
	sleeping        bool
	lastInteraction time.Time
}

// New creates an awake controller with the interaction timer started at now.
func New(display hw.Display, buzzer hw.Buzzer, idleTimeout time.Duration, now time.Time) *Controller {
	return &Controller{
		display:         display,
		buzzer:          buzzer,
		idleTimeout:     idleTimeout,
		lastInteraction: now,
	}
}

// Sleeping reports whether the display is currently powered down.
func (c *Controller) Sleeping() bool { return c.sleeping }

// Tick evaluates the idle duration and enters sleep once it exceeds the
// timeout. Entering sleep powers the display off and emits the low tone.
func (c *Controller) Tick(now time.Time) {
	if c.sleeping {
		return
	}
	if now.Sub(c.lastInteraction) > c.idleTimeout {
		c.sleeping = true
		c.display.SetPower(false)
		c.buzzer.Beep(hw.ToneSleep)
	}
}

// Wake leaves the sleeping state, powers the display back on, resets the
// interaction timer and emits the high tone. Calling Wake while awake does
// nothing.
func (c *Controller) Wake(now time.Time) {
	if !c.sleeping {
		return
	}
	c.sleeping = false
	c.lastInteraction = now
	c.display.SetPower(true)
	c.buzzer.Beep(hw.ToneWake)
}

// NoteInteraction resets the interaction timer without changing sleep state.
func (c *Controller) NoteInteraction(now time.Time) {
	c.lastInteraction = now
}
