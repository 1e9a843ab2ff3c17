package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/pulseband/pkg/band"
	"github.com/itohio/pulseband/pkg/config"
	"github.com/itohio/pulseband/pkg/hw"
	"github.com/itohio/pulseband/pkg/input"
	"github.com/itohio/pulseband/pkg/menu"
)

// stubDevice feeds scripted frames to the tracker.
type stubDevice struct {
	frames     chan band.Frame
	connectErr error
	connected  bool
}

func newStubDevice() *stubDevice {
	return &stubDevice{frames: make(chan band.Frame, 16)}
}

func (d *stubDevice) Connect() error {
	if d.connectErr != nil {
		return d.connectErr
	}
	d.connected = true
	return nil
}

func (d *stubDevice) Close() error {
	d.connected = false
	return nil
}

func (d *stubDevice) Frames() <-chan band.Frame { return d.frames }
func (d *stubDevice) IsConnected() bool         { return d.connected }

func (d *stubDevice) push(f band.Frame) { d.frames <- f }

func restingFrame(now time.Time) band.Frame {
	return band.Frame{
		Timestamp: now,
		IR:        52500,
		Ax:        0, Ay: 0, Az: 1.0,
		TempRaw: 1075,
		BattRaw: 2480,
	}
}

func newTracker(t *testing.T) (*Tracker, *stubDevice, *hw.FakeDisplay, *hw.FakeBuzzer, time.Time) {
	t.Helper()
	cfg := config.Default()
	dev := newStubDevice()
	display := hw.NewFakeDisplay(cfg.Display.Width, cfg.Display.Height)
	buzzer := &hw.FakeBuzzer{}
	now := time.Now()
	return New(cfg, dev, display, buzzer, now), dev, display, buzzer, now
}

// tap simulates a full press-and-release across ticks.
func tap(tr *Tracker, ch input.Channel, now time.Time) time.Time {
	tr.Press(ch, true)
	now = now.Add(200 * time.Millisecond)
	tr.Tick(now)
	tr.Press(ch, false)
	now = now.Add(200 * time.Millisecond)
	tr.Tick(now)
	return now
}

func TestTracker_BootState(t *testing.T) {
	tr, _, _, _, _ := newTracker(t)

	assert.Equal(t, menu.ScreenVitals, tr.Menu().Screen())
	assert.Equal(t, menu.PageWaveform, tr.Menu().VitalsPage())
	assert.Equal(t, uint32(0), tr.Steps())
	assert.False(t, tr.Sleeping())
}

func TestTracker_HeldButtonNavigatesOnce(t *testing.T) {
	tr, _, _, _, now := newTracker(t)

	tr.Press(input.ChanNext, true)
	for i := range 5 {
		tr.Tick(now.Add(time.Duration(i+1) * 200 * time.Millisecond))
	}

	// Five ticks with the button held advance exactly one screen.
	assert.Equal(t, menu.ScreenSteps, tr.Menu().Screen())
}

func TestTracker_StepPipelineGatedByScreen(t *testing.T) {
	tr, dev, _, _, now := newTracker(t)

	// Impact frames while on Vitals must not count steps.
	dev.push(restingFrame(now))
	now = now.Add(200 * time.Millisecond)
	tr.Tick(now)

	impact := restingFrame(now)
	impact.Az = 3.0
	dev.push(impact)
	now = now.Add(200 * time.Millisecond)
	tr.Tick(now)
	assert.Equal(t, uint32(0), tr.Steps())

	// Settle back to rest before leaving Vitals so the navigation ticks
	// observe a quiet wrist.
	dev.push(restingFrame(now))
	now = now.Add(200 * time.Millisecond)
	tr.Tick(now)

	// Navigate to Steps; the same impact pattern now registers.
	now = tap(tr, input.ChanNext, now)
	require.Equal(t, menu.ScreenSteps, tr.Menu().Screen())

	dev.push(restingFrame(now))
	now = now.Add(400 * time.Millisecond)
	tr.Tick(now)

	impact = restingFrame(now)
	impact.Az = 3.0
	dev.push(impact)
	now = now.Add(400 * time.Millisecond)
	tr.Tick(now)

	assert.Equal(t, uint32(1), tr.Steps())
}

func TestTracker_SleepAndWake(t *testing.T) {
	tr, _, display, buzzer, now := newTracker(t)

	tr.Tick(now.Add(200 * time.Millisecond))
	assert.False(t, tr.Sleeping())

	// 31 seconds with no edges puts the tracker to sleep.
	asleepAt := now.Add(31 * time.Second)
	tr.Tick(asleepAt)
	assert.True(t, tr.Sleeping())
	assert.False(t, display.PowerOn)
	assert.Contains(t, buzzer.Tones, hw.ToneSleep)

	// While sleeping, ticks render nothing.
	flushes := display.Flushes
	tr.Tick(asleepAt.Add(200 * time.Millisecond))
	assert.Equal(t, flushes, display.Flushes)

	// An edge wakes the tracker instead of navigating. Wake polls run on
	// the longer cadence, so allow a few ticks.
	tr.Press(input.ChanNext, true)
	wakeAt := asleepAt
	for i := range 4 {
		wakeAt = asleepAt.Add(time.Duration(i+1) * 200 * time.Millisecond)
		tr.Tick(wakeAt)
		if !tr.Sleeping() {
			break
		}
	}
	tr.Press(input.ChanNext, false)

	assert.False(t, tr.Sleeping())
	assert.True(t, display.PowerOn)
	assert.Contains(t, buzzer.Tones, hw.ToneWake)
	assert.Equal(t, menu.ScreenVitals, tr.Menu().Screen(), "wake edge must not navigate")

	// The wake reset the idle timer: a fresh 30s window applies.
	tr.Tick(wakeAt.Add(29 * time.Second))
	assert.False(t, tr.Sleeping())
	tr.Tick(wakeAt.Add(30*time.Second + 200*time.Millisecond))
	assert.True(t, tr.Sleeping())
}

func TestTracker_EndToEnd(t *testing.T) {
	tr, dev, display, _, now := newTracker(t)

	// Boot: Vitals/Waveform, zero steps.
	assert.Equal(t, menu.ScreenVitals, tr.Menu().Screen())
	assert.Equal(t, uint32(0), tr.Steps())

	// "next" edge selects the Steps screen.
	now = tap(tr, input.ChanNext, now)
	assert.Equal(t, menu.ScreenSteps, tr.Menu().Screen())
	assert.True(t, display.HasText("STEPS"))

	// A magnitude jump of 3g after 500ms of idling counts one step.
	dev.push(restingFrame(now))
	now = now.Add(500 * time.Millisecond)
	tr.Tick(now)

	impact := restingFrame(now)
	impact.Az = 3.0
	dev.push(impact)
	now = now.Add(500 * time.Millisecond)
	tr.Tick(now)
	assert.Equal(t, uint32(1), tr.Steps())

	// 31 idle seconds put the tracker to sleep.
	now = now.Add(31 * time.Second)
	tr.Tick(now)
	assert.True(t, tr.Sleeping())

	// Any edge wakes it and resets the interaction timer.
	tr.Press(input.ChanSelect, true)
	for i := range 4 {
		tr.Tick(now.Add(time.Duration(i+1) * 200 * time.Millisecond))
		if !tr.Sleeping() {
			break
		}
	}
	assert.False(t, tr.Sleeping())
	assert.Equal(t, menu.ScreenSteps, tr.Menu().Screen())
}

func TestTracker_FailBootHalts(t *testing.T) {
	cfg := config.Default()
	dev := newStubDevice()
	dev.connectErr = errors.New("port busy")
	display := hw.NewFakeDisplay(cfg.Display.Width, cfg.Display.Height)
	now := time.Now()
	tr := New(cfg, dev, display, hw.NopBuzzer{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := tr.Run(ctx)

	require.Error(t, err)
	assert.True(t, tr.Failed())
	assert.True(t, display.HasText("INIT FAIL"))

	// Halted: further ticks draw nothing.
	flushes := display.Flushes
	tr.Tick(now.Add(time.Second))
	assert.Equal(t, flushes, display.Flushes)
}

func TestTracker_VitalsSubPageToggle(t *testing.T) {
	tr, dev, display, _, now := newTracker(t)

	dev.push(restingFrame(now))
	now = tap(tr, input.ChanSelect, now)
	assert.Equal(t, menu.PageNumeric, tr.Menu().VitalsPage())
	assert.True(t, display.HasText("TEMP"))

	now = tap(tr, input.ChanSelect, now)
	assert.Equal(t, menu.PageWaveform, tr.Menu().VitalsPage())
	_ = now
}
