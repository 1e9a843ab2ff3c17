package main

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/pulseband/pkg/hw"
)

// pixelScale is how many screen pixels one panel pixel occupies.
const pixelScale = 3

// op is one recorded draw primitive.
type op struct {
	line   bool
	x0, y0 int
	x1, y1 int
	size   hw.TextSize
	text   string
}

// Panel is a custom Fyne widget simulating the wrist unit's monochrome
// bitmap panel. It implements hw.Display: draw calls accumulate into a
// pending frame that Flush commits; Refresh rebuilds the canvas objects from
// the committed frame.
type Panel struct {
	widget.BaseWidget

	width  int
	height int

	// Frame state (protected by mu; drawn from the tick goroutine,
	// rendered from the Fyne thread)
	mu        sync.RWMutex
	pending   []op
	committed []op
	powerOn   bool
}

var _ hw.Display = (*Panel)(nil)

// NewPanel creates a powered-on panel widget of the given pixel dimensions.
func NewPanel(width, height int) *Panel {
	p := &Panel{
		width:   width,
		height:  height,
		powerOn: true,
	}
	p.ExtendBaseWidget(p)
	return p
}

// Bounds returns the panel dimensions in panel pixels.
func (p *Panel) Bounds() (int, int) { return p.width, p.height }

// Clear drops the pending frame.
func (p *Panel) Clear() {
	p.mu.Lock()
	p.pending = p.pending[:0]
	p.mu.Unlock()
}

// DrawLine records a line segment in panel coordinates.
func (p *Panel) DrawLine(x0, y0, x1, y1 int) {
	p.mu.Lock()
	p.pending = append(p.pending, op{line: true, x0: x0, y0: y0, x1: x1, y1: y1})
	p.mu.Unlock()
}

// DrawText records a text draw at the given panel position and font scale.
func (p *Panel) DrawText(x, y int, size hw.TextSize, text string) {
	p.mu.Lock()
	p.pending = append(p.pending, op{x0: x, y0: y, size: size, text: text})
	p.mu.Unlock()
}

// Flush commits the pending frame. The widget picks it up on the next
// Refresh, which must run on the Fyne thread.
func (p *Panel) Flush() {
	p.mu.Lock()
	p.committed = append(p.committed[:0], p.pending...)
	p.mu.Unlock()
}

// SetPower switches the simulated panel power. A powered-off panel renders
// as a blank dark rectangle regardless of the committed frame.
func (p *Panel) SetPower(on bool) {
	p.mu.Lock()
	p.powerOn = on
	p.mu.Unlock()
}

// CreateRenderer creates the widget renderer.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 10, G: 12, B: 10, A: 255})
	return &panelRenderer{
		panel:   p,
		bg:      bg,
		objects: []fyne.CanvasObject{bg},
	}
}

// panelRenderer renders the committed frame.
type panelRenderer struct {
	panel   *Panel
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
}

// foreground is the lit-pixel color of the simulated OLED.
var foreground = color.RGBA{R: 120, G: 220, B: 160, A: 255}

func (r *panelRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.panel.width*pixelScale), float32(r.panel.height*pixelScale))
}

func (r *panelRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
}

func (r *panelRenderer) Refresh() {
	r.panel.mu.RLock()
	ops := append([]op(nil), r.panel.committed...)
	powerOn := r.panel.powerOn
	r.panel.mu.RUnlock()

	r.objects = r.objects[:1] // keep background

	if !powerOn {
		canvas.Refresh(r.panel)
		return
	}

	for _, o := range ops {
		if o.line {
			line := canvas.NewLine(foreground)
			line.Position1 = fyne.NewPos(float32(o.x0*pixelScale), float32(o.y0*pixelScale))
			line.Position2 = fyne.NewPos(float32(o.x1*pixelScale), float32(o.y1*pixelScale))
			line.StrokeWidth = pixelScale
			r.objects = append(r.objects, line)
			continue
		}
		text := canvas.NewText(o.text, foreground)
		text.TextSize = float32(8 * int(o.size) * pixelScale)
		text.TextStyle = fyne.TextStyle{Monospace: true}
		text.Move(fyne.NewPos(float32(o.x0*pixelScale), float32(o.y0*pixelScale)))
		r.objects = append(r.objects, text)
	}

	canvas.Refresh(r.panel)
}

func (r *panelRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *panelRenderer) Destroy() {
	// Cleanup handled by Fyne
}
