package sleep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/pulseband/pkg/hw"
)

const timeout = 30 * time.Second

func TestTick_SleepsAfterIdleTimeout(t *testing.T) {
	display := hw.NewFakeDisplay(128, 64)
	buzzer := &hw.FakeBuzzer{}
	now := time.Now()
	c := New(display, buzzer, timeout, now)

	c.Tick(now.Add(timeout))
	assert.False(t, c.Sleeping(), "exactly at the timeout is not yet idle")

	c.Tick(now.Add(timeout + time.Millisecond))
	assert.True(t, c.Sleeping())
	assert.False(t, display.PowerOn)
	assert.Equal(t, []hw.Tone{hw.ToneSleep}, buzzer.Tones)

	// Further ticks while sleeping do not beep again.
	c.Tick(now.Add(2 * timeout))
	assert.Len(t, buzzer.Tones, 1)
}

func TestWake(t *testing.T) {
	display := hw.NewFakeDisplay(128, 64)
	buzzer := &hw.FakeBuzzer{}
	now := time.Now()
	c := New(display, buzzer, timeout, now)

	// Wake while awake is a no-op.
	c.Wake(now)
	assert.Empty(t, buzzer.Tones)

	c.Tick(now.Add(timeout + time.Second))
	assert.True(t, c.Sleeping())

	wakeAt := now.Add(timeout + 2*time.Second)
	c.Wake(wakeAt)
	assert.False(t, c.Sleeping())
	assert.True(t, display.PowerOn)
	assert.Equal(t, hw.ToneWake, buzzer.Tones[len(buzzer.Tones)-1])

	// Wake reset the interaction timer: not sleepy again until a fresh timeout.
	c.Tick(wakeAt.Add(timeout))
	assert.False(t, c.Sleeping())
	c.Tick(wakeAt.Add(timeout + time.Millisecond))
	assert.True(t, c.Sleeping())
}

func TestNoteInteraction_DefersSleep(t *testing.T) {
	display := hw.NewFakeDisplay(128, 64)
	now := time.Now()
	c := New(display, hw.NopBuzzer{}, timeout, now)

	noted := now.Add(20 * time.Second)
	c.NoteInteraction(noted)

	c.Tick(now.Add(timeout + time.Second)) // would have slept without the note
	assert.False(t, c.Sleeping())

	c.Tick(noted.Add(timeout + time.Millisecond))
	assert.True(t, c.Sleeping())
}
