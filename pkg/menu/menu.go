// Package menu holds the screen-selection state machine advanced by
// debounced button events.
package menu

import (
	"time"

	"github.com/itohio/pulseband/pkg/hw"
)

// Screen identifies one of the tracker's top-level views.
type Screen uint8

const (
	ScreenVitals Screen = iota
	ScreenSteps
	ScreenBattery
	ScreenAbout

	numScreens
)

// String returns the screen's display title.
func (s Screen) String() string {
	switch s {
	case ScreenVitals:
		return "Vitals"
	case ScreenSteps:
		return "Steps"
	case ScreenBattery:
		return "Battery"
	case ScreenAbout:
		return "About"
	}
	return "?"
}

// VitalsPage selects the sub-view of the Vitals screen.
type VitalsPage uint8

const (
	PageWaveform VitalsPage = iota
	PageNumeric
)

// Interactions is the part of the sleep controller the menu needs.
type Interactions interface {
	NoteInteraction(now time.Time)
}

// State is the menu state machine. There is no terminal state; the screens
// cycle indefinitely. The zero screen pair (Vitals, Waveform) is the boot
// state.
type State struct {
	buzzer hw.Buzzer
	idle   Interactions

	screen     Screen
	vitalsPage VitalsPage
}

// New creates the menu in its boot state.
func New(buzzer hw.Buzzer, idle Interactions) *State {
	return &State{buzzer: buzzer, idle: idle}
}

// Screen returns the currently selected screen.
func (s *State) Screen() Screen { return s.screen }

// VitalsPage returns the current Vitals sub-page. Meaningful only while
// Screen() == ScreenVitals.
func (s *State) VitalsPage() VitalsPage { return s.vitalsPage }

// Next advances the selected screen cyclically. Called for every consumed
// "next" edge while awake.
func (s *State) Next(now time.Time) {
	s.screen = (s.screen + 1) % numScreens
	s.buzzer.Beep(hw.ToneNav)
	s.idle.NoteInteraction(now)
}

// Select toggles the Vitals sub-page. On any other screen the edge still
// counts as an interaction but changes nothing.
func (s *State) Select(now time.Time) {
	s.idle.NoteInteraction(now)
	if s.screen != ScreenVitals {
		return
	}
	if s.vitalsPage == PageWaveform {
		s.vitalsPage = PageNumeric
	} else {
		s.vitalsPage = PageWaveform
	}
	s.buzzer.Beep(hw.ToneSelect)
}
