// Package steps converts the accelerometer magnitude stream into discrete
// step counts.
package steps

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/pulseband/pkg/hw"
)

// Detector registers a step whenever the acceleration magnitude jumps by
// more than the trigger delta relative to the immediately preceding sample,
// gated by a refractory period. This is a single-threshold
// adjacent-difference detector, not a peak finder: it trades some false
// positives and negatives for O(1) per-sample cost.
//
// The count is monotonically non-decreasing and resets only on power cycle;
// there is no overflow handling, which at one step per 300ms would take
// decades to matter.
type Detector struct {
	buzzer     hw.Buzzer
	trigger    float32
	refractory time.Duration

	prevMagnitude float32
	lastStep      time.Time
	count         uint32
}

// New creates a detector with the given trigger delta (sensor units, g for
// the reference accelerometer) and refractory period.
func New(buzzer hw.Buzzer, trigger float32, refractory time.Duration) *Detector {
	return &Detector{buzzer: buzzer, trigger: trigger, refractory: refractory}
}

// Count returns the steps registered so far.
func (d *Detector) Count() uint32 { return d.count }

// Observe feeds one accelerometer sample and returns the step count so far.
// The previous magnitude updates on every call, registered step or not, so
// the delta is always against the immediately preceding sample.
func (d *Detector) Observe(ax, ay, az float32, now time.Time) uint32 {
	mag := math32.Sqrt(ax*ax + ay*ay + az*az)

	delta := mag - d.prevMagnitude
	if delta < 0 {
		delta = -delta
	}
	if delta > d.trigger && now.Sub(d.lastStep) > d.refractory {
		d.count++
		d.lastStep = now
		d.buzzer.Beep(hw.ToneStep)
	}

	d.prevMagnitude = mag
	return d.count
}
