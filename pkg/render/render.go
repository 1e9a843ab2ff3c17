// Package render turns the menu state and the latest sensor values into
// draw commands for the panel. It holds no state of its own.
package render

import (
	"fmt"

	"github.com/itohio/pulseband/pkg/hw"
	"github.com/itohio/pulseband/pkg/menu"
	"github.com/itohio/pulseband/pkg/waveform"
)

const (
	Name    = "pulseband"
	Version = "0.2.0"
)

// HeaderHeight is the band at the top of every screen reserved for the
// title text.
const HeaderHeight = 16

// PlotHeight returns the waveform band height for a panel of the given
// height. Scaled samples pushed into the ring must lie in [0, PlotHeight-1].
func PlotHeight(panelHeight int) int {
	return panelHeight - HeaderHeight
}

// Values are the latest frame-derived readouts the views display.
type Values struct {
	IRRaw        float32
	TemperatureC float64
	BatteryVolts float64
	BatteryPct   int
	Steps        uint32
}

// Draw renders the view selected by the menu state and commits the frame.
func Draw(d hw.Display, screen menu.Screen, page menu.VitalsPage, v Values, ring *waveform.Ring) {
	d.Clear()

	switch screen {
	case menu.ScreenVitals:
		if page == menu.PageWaveform {
			drawWaveform(d, ring)
		} else {
			drawVitalsNumeric(d, v)
		}
	case menu.ScreenSteps:
		drawSteps(d, v)
	case menu.ScreenBattery:
		drawBattery(d, v)
	case menu.ScreenAbout:
		drawAbout(d)
	}

	d.Flush()
}

// DrawBootFailure renders the fixed fatal-initialization screen. The runtime
// halts after this; only a power cycle recovers.
func DrawBootFailure(d hw.Display, msg string) {
	d.Clear()
	d.DrawText(0, 0, hw.TextLarge, "INIT FAIL")
	d.DrawText(0, 24, hw.TextSmall, msg)
	d.Flush()
}

func drawHeader(d hw.Display, title string) {
	w, _ := d.Bounds()
	d.DrawText(0, 0, hw.TextSmall, title)
	d.DrawLine(0, HeaderHeight-2, w-1, HeaderHeight-2)
}

// drawWaveform plots the ring oldest-first, one column per entry, with
// consecutive columns joined by line segments. Larger values plot higher.
func drawWaveform(d hw.Display, ring *waveform.Ring) {
	drawHeader(d, "PULSE")

	_, h := d.Bounds()
	plotH := PlotHeight(h)

	prevY := 0
	ring.ForEachInOrder(func(i, v int) {
		y := HeaderHeight + plotH - 1 - v
		if i > 0 {
			d.DrawLine(i-1, prevY, i, y)
		}
		prevY = y
	})
}

func drawVitalsNumeric(d hw.Display, v Values) {
	drawHeader(d, "PULSE")
	d.DrawText(0, 20, hw.TextSmall, fmt.Sprintf("IR %.0f", v.IRRaw))
	d.DrawText(0, 36, hw.TextSmall, fmt.Sprintf("TEMP %.1f C", v.TemperatureC))
}

func drawSteps(d hw.Display, v Values) {
	drawHeader(d, "STEPS")
	d.DrawText(0, 24, hw.TextLarge, fmt.Sprintf("%d", v.Steps))
}

func drawBattery(d hw.Display, v Values) {
	drawHeader(d, "BATTERY")
	d.DrawText(0, 20, hw.TextLarge, fmt.Sprintf("%d%%", v.BatteryPct))
	d.DrawText(0, 44, hw.TextSmall, fmt.Sprintf("%.2f V", v.BatteryVolts))
}

func drawAbout(d hw.Display) {
	drawHeader(d, "ABOUT")
	d.DrawText(0, 20, hw.TextSmall, Name)
	d.DrawText(0, 36, hw.TextSmall, "v"+Version)
}
