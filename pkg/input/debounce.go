// Package input converts raw, possibly-chattering button levels into
// one-shot press edge events.
package input

// Channel identifies a logical button.
type Channel uint8

const (
	ChanNext Channel = iota
	ChanSelect
)

// LevelFunc reports the current raw level of a channel, true while pressed.
// The buttons are active-low with pull-ups; whoever provides the levels is
// expected to have normalized pressed to true already.
type LevelFunc func(Channel) bool

// Debouncer reports a press exactly once per release-to-press transition.
// It keeps one previous-level bit per declared channel, initialized to
// released so a floating pin at startup cannot register before its first
// observed release. There is no timing filter beyond edge detection; the
// polling period is the de facto debounce window.
type Debouncer struct {
	read LevelFunc
	prev map[Channel]bool
}

// NewDebouncer creates a debouncer for exactly the declared channels.
func NewDebouncer(read LevelFunc, channels ...Channel) *Debouncer {
	prev := make(map[Channel]bool, len(channels))
	for _, ch := range channels {
		prev[ch] = false // released
	}
	return &Debouncer{read: read, prev: prev}
}

// PollEdge samples the channel and reports true only on the transition from
// released to pressed. Sustained levels in either direction report false.
// Undeclared channels are ignored.
func (d *Debouncer) PollEdge(ch Channel) bool {
	prev, ok := d.prev[ch]
	if !ok {
		return false
	}
	level := d.read(ch)
	d.prev[ch] = level
	return level && !prev
}
