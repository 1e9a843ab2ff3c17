package hw

import (
	"fmt"
	"strings"
)

// FakeDisplay records draw commands for tests. Commands are recorded as
// readable strings so assertions can grep for the interesting ones.
type FakeDisplay struct {
	Width  int
	Height int

	Ops     []string // commands since the last Flush
	Flushed []string // commands committed by the last Flush
	PowerOn bool
	Flushes int
}

var _ Display = (*FakeDisplay)(nil)

// NewFakeDisplay creates a powered-on fake panel of the given dimensions.
func NewFakeDisplay(width, height int) *FakeDisplay {
	return &FakeDisplay{Width: width, Height: height, PowerOn: true}
}

func (d *FakeDisplay) Bounds() (int, int) { return d.Width, d.Height }

func (d *FakeDisplay) Clear() {
	d.Ops = d.Ops[:0]
}

func (d *FakeDisplay) DrawLine(x0, y0, x1, y1 int) {
	d.Ops = append(d.Ops, fmt.Sprintf("line %d,%d-%d,%d", x0, y0, x1, y1))
}

func (d *FakeDisplay) DrawText(x, y int, size TextSize, text string) {
	d.Ops = append(d.Ops, fmt.Sprintf("text %d,%d s%d %q", x, y, size, text))
}

func (d *FakeDisplay) Flush() {
	d.Flushed = append(d.Flushed[:0], d.Ops...)
	d.Flushes++
}

func (d *FakeDisplay) SetPower(on bool) { d.PowerOn = on }

// HasText reports whether any committed text command contains s.
func (d *FakeDisplay) HasText(s string) bool {
	for _, op := range d.Flushed {
		if strings.HasPrefix(op, "text") && strings.Contains(op, s) {
			return true
		}
	}
	return false
}

// Lines counts committed line commands.
func (d *FakeDisplay) Lines() int {
	n := 0
	for _, op := range d.Flushed {
		if strings.HasPrefix(op, "line") {
			n++
		}
	}
	return n
}

// FakeBuzzer records emitted tones for tests.
type FakeBuzzer struct {
	Tones []Tone
}

var _ Buzzer = (*FakeBuzzer)(nil)

func (b *FakeBuzzer) Beep(t Tone) { b.Tones = append(b.Tones, t) }
