package hw

import "time"

// TextSize selects one of the panel's font scales.
type TextSize int

const (
	TextSmall TextSize = 1
	TextLarge TextSize = 2
)

// Display is the bitmap panel collaborator. Implementations push pixels to
// real or simulated hardware; the runtime only issues these primitives.
// Draw calls accumulate into the current frame until Flush commits it.
type Display interface {
	Bounds() (width, height int)
	Clear()
	DrawLine(x0, y0, x1, y1 int)
	DrawText(x, y int, size TextSize, text string)
	Flush()
	SetPower(on bool)
}

// Tone is a single acknowledgment beep.
type Tone struct {
	Freq     uint16 // Hz
	Duration time.Duration
}

// Buzzer emits fire-and-forget acknowledgment tones. Implementations must
// not block longer than the tone duration.
type Buzzer interface {
	Beep(t Tone)
}

// Acknowledgment tones. Each event class gets a distinct pitch so the user
// can tell navigation, wake/sleep and step feedback apart without looking.
// Durations stay well under the 200ms loop period.
var (
	ToneNav    = Tone{Freq: 1200, Duration: 40 * time.Millisecond}
	ToneSelect = Tone{Freq: 1500, Duration: 40 * time.Millisecond}
	ToneStep   = Tone{Freq: 900, Duration: 30 * time.Millisecond}
	ToneSleep  = Tone{Freq: 400, Duration: 120 * time.Millisecond}
	ToneWake   = Tone{Freq: 1800, Duration: 80 * time.Millisecond}
)

// NopBuzzer discards all tones.
type NopBuzzer struct{}

var _ Buzzer = NopBuzzer{}

func (NopBuzzer) Beep(Tone) {}
