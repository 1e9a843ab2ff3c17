package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/pulseband/pkg/hw"
	"github.com/itohio/pulseband/pkg/menu"
	"github.com/itohio/pulseband/pkg/waveform"
)

func values() Values {
	return Values{
		IRRaw:        52000,
		TemperatureC: 36.6,
		BatteryVolts: 3.95,
		BatteryPct:   72,
		Steps:        1234,
	}
}

func TestDraw_WaveformConnectsAllColumns(t *testing.T) {
	d := hw.NewFakeDisplay(128, 64)
	ring := waveform.NewRing(128)
	for i := range 128 {
		ring.Push(i % PlotHeight(64))
	}

	Draw(d, menu.ScreenVitals, menu.PageWaveform, values(), ring)

	// 127 waveform segments plus the header underline.
	assert.Equal(t, 128, d.Lines())
	assert.True(t, d.HasText("PULSE"))
	assert.Equal(t, 1, d.Flushes)
}

func TestDraw_WaveformColumnHeights(t *testing.T) {
	d := hw.NewFakeDisplay(8, 64)
	ring := waveform.NewRing(8)
	// Flat zero line, then one full-height spike in the last column.
	for range 7 {
		ring.Push(0)
	}
	ring.Push(PlotHeight(64) - 1)

	Draw(d, menu.ScreenVitals, menu.PageWaveform, values(), ring)

	// A zero value plots at the plot bottom (y=63), the max value at the top
	// of the band (y=HeaderHeight).
	assert.Contains(t, d.Flushed, "line 5,63-6,63")
	assert.Contains(t, d.Flushed, "line 6,63-7,16")
}

func TestDraw_VitalsNumeric(t *testing.T) {
	d := hw.NewFakeDisplay(128, 64)

	Draw(d, menu.ScreenVitals, menu.PageNumeric, values(), waveform.NewRing(128))

	assert.True(t, d.HasText("IR 52000"))
	assert.True(t, d.HasText("TEMP 36.6 C"))
	// No waveform on the numeric page, just the header underline.
	assert.Equal(t, 1, d.Lines())
}

func TestDraw_Steps(t *testing.T) {
	d := hw.NewFakeDisplay(128, 64)

	Draw(d, menu.ScreenSteps, menu.PageWaveform, values(), waveform.NewRing(128))

	assert.True(t, d.HasText("STEPS"))
	assert.True(t, d.HasText("1234"))
}

func TestDraw_Battery(t *testing.T) {
	d := hw.NewFakeDisplay(128, 64)

	Draw(d, menu.ScreenBattery, menu.PageWaveform, values(), waveform.NewRing(128))

	assert.True(t, d.HasText("BATTERY"))
	assert.True(t, d.HasText("72%"))
	assert.True(t, d.HasText("3.95 V"))
}

func TestDraw_About(t *testing.T) {
	d := hw.NewFakeDisplay(128, 64)

	Draw(d, menu.ScreenAbout, menu.PageWaveform, values(), waveform.NewRing(128))

	assert.True(t, d.HasText(Name))
	assert.True(t, d.HasText(Version))
}

func TestDrawBootFailure(t *testing.T) {
	d := hw.NewFakeDisplay(128, 64)

	DrawBootFailure(d, "no sensor board")

	assert.True(t, d.HasText("INIT FAIL"))
	assert.True(t, d.HasText("no sensor board"))
}
