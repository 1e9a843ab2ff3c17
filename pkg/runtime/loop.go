// Package runtime is the tracker's main control loop: one logical task
// advancing once per fixed tick, with no preemption and no shared-state
// concurrency. All runtime state lives in the Tracker struct and is written
// only by the tick flow.
package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itohio/pulseband/pkg/band"
	"github.com/itohio/pulseband/pkg/config"
	"github.com/itohio/pulseband/pkg/hw"
	"github.com/itohio/pulseband/pkg/input"
	"github.com/itohio/pulseband/pkg/menu"
	"github.com/itohio/pulseband/pkg/render"
	"github.com/itohio/pulseband/pkg/scale"
	"github.com/itohio/pulseband/pkg/sleep"
	"github.com/itohio/pulseband/pkg/steps"
	"github.com/itohio/pulseband/pkg/waveform"
)

// Tracker owns all runtime state and advances it once per tick.
//
// Everything except the UI button overrides is touched only by the tick
// goroutine. If rendering ever moves to its own task, hand it frames over a
// queue instead of sharing this struct.
type Tracker struct {
	cfg     *config.Config
	dev     band.Device
	display hw.Display
	buzzer  hw.Buzzer

	debouncer *input.Debouncer
	sleep     *sleep.Controller
	menu      *menu.State
	ring      *waveform.Ring
	steps     *steps.Detector

	plotHeight int

	latest    band.Frame
	haveFrame bool

	// Button levels injected by the host UI, OR'ed with the board's levels.
	// Written from the UI goroutine, hence the lock.
	overrideMu sync.Mutex
	override   [2]bool

	sleepTicks int
	failed     bool
}

// New creates a tracker in its boot state (Vitals/Waveform, zero steps,
// awake with the idle timer started at now).
func New(cfg *config.Config, dev band.Device, display hw.Display, buzzer hw.Buzzer, now time.Time) *Tracker {
	t := &Tracker{
		cfg:        cfg,
		dev:        dev,
		display:    display,
		buzzer:     buzzer,
		plotHeight: render.PlotHeight(cfg.Display.Height),
		ring:       waveform.NewRing(cfg.Display.Width),
		steps:      steps.New(buzzer, cfg.Tuning.StepTriggerDelta, cfg.Tuning.StepRefractory),
	}
	t.debouncer = input.NewDebouncer(t.level, input.ChanNext, input.ChanSelect)
	t.sleep = sleep.New(display, buzzer, cfg.Tuning.IdleTimeout, now)
	t.menu = menu.New(buzzer, t.sleep)
	return t
}

// Menu exposes the menu state machine.
func (t *Tracker) Menu() *menu.State { return t.menu }

// Sleeping reports whether the tracker is in display sleep.
func (t *Tracker) Sleeping() bool { return t.sleep.Sleeping() }

// Steps returns the step count so far.
func (t *Tracker) Steps() uint32 { return t.steps.Count() }

// Failed reports whether the tracker hit a fatal initialization failure.
func (t *Tracker) Failed() bool { return t.failed }

// Press injects a host-side button level, true while pressed. The level is
// OR'ed with the board's physical button level until released again.
func (t *Tracker) Press(ch input.Channel, down bool) {
	if int(ch) >= len(t.override) {
		return
	}
	t.overrideMu.Lock()
	t.override[ch] = down
	t.overrideMu.Unlock()
}

// level is the debouncer's raw level source.
func (t *Tracker) level(ch input.Channel) bool {
	t.overrideMu.Lock()
	injected := int(ch) < len(t.override) && t.override[ch]
	t.overrideMu.Unlock()
	if injected {
		return true
	}
	switch ch {
	case input.ChanNext:
		return t.latest.BtnNext
	case input.ChanSelect:
		return t.latest.BtnSelect
	}
	return false
}

// Tick advances the tracker by one loop iteration.
func (t *Tracker) Tick(now time.Time) {
	if t.failed {
		return
	}

	t.drainFrames()
	t.sleep.Tick(now)

	if t.sleep.Sleeping() {
		// While sleeping only wake-capable edges are polled, on a longer
		// cadence; everything else stays idle.
		t.sleepTicks++
		if t.sleepTicks%t.cfg.Tuning.SleepPollEvery != 0 {
			return
		}
		next := t.debouncer.PollEdge(input.ChanNext)
		sel := t.debouncer.PollEdge(input.ChanSelect)
		if next || sel {
			t.sleep.Wake(now)
		}
		return
	}
	t.sleepTicks = 0

	if t.debouncer.PollEdge(input.ChanNext) {
		t.menu.Next(now)
	}
	if t.debouncer.PollEdge(input.ChanSelect) {
		t.menu.Select(now)
	}

	// Only the screen being looked at drives its pipeline.
	switch t.menu.Screen() {
	case menu.ScreenVitals:
		if t.haveFrame {
			col := scale.Column(t.latest.IR, t.cfg.Tuning.WaveformMin, t.cfg.Tuning.WaveformMax, t.plotHeight)
			t.ring.Push(col)
		}
	case menu.ScreenSteps:
		if t.haveFrame {
			t.steps.Observe(t.latest.Ax, t.latest.Ay, t.latest.Az, now)
		}
	}

	render.Draw(t.display, t.menu.Screen(), t.menu.VitalsPage(), t.values(), t.ring)
}

// drainFrames empties the device channel, keeping the newest frame as the
// tick's sensor snapshot.
func (t *Tracker) drainFrames() {
	for {
		select {
		case f, ok := <-t.dev.Frames():
			if !ok {
				return
			}
			t.latest = f
			t.haveFrame = true
		default:
			return
		}
	}
}

func (t *Tracker) values() render.Values {
	volts := scale.BatteryVolts(t.latest.BattRaw, t.cfg.Battery.VRef, t.cfg.Battery.DividerR)
	return render.Values{
		IRRaw:        t.latest.IR,
		TemperatureC: scale.TemperatureC(t.latest.TempRaw, t.cfg.Battery.VRef),
		BatteryVolts: volts,
		BatteryPct:   scale.BatteryPercent(volts, t.cfg.Battery.EmptyV, t.cfg.Battery.FullV),
		Steps:        t.steps.Count(),
	}
}

// FailBoot renders the fixed fatal-initialization screen and halts the
// tracker. There is no recovery other than a power cycle.
func (t *Tracker) FailBoot(msg string) {
	t.failed = true
	render.DrawBootFailure(t.display, msg)
}

// Run connects the device and ticks until the context is cancelled. A
// connect failure is fatal: the error screen is drawn and the tracker stays
// halted.
func (t *Tracker) Run(ctx context.Context) error {
	if err := t.dev.Connect(); err != nil {
		t.FailBoot("no sensor board")
		return fmt.Errorf("failed to connect to sensor board: %w", err)
	}
	defer t.dev.Close()

	ticker := time.NewTicker(t.cfg.Tuning.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t.Tick(now)
		}
	}
}
