package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/pulseband/pkg/band"
	"github.com/itohio/pulseband/pkg/config"
	"github.com/itohio/pulseband/pkg/hw"
	"github.com/itohio/pulseband/pkg/input"
	"github.com/itohio/pulseband/pkg/runtime"
)

// tapDuration is how long an on-screen button press is held. It must exceed
// one tick period so the debouncer observes the pressed level at least once.
const tapDuration = 300 * time.Millisecond

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use a simulated wrist unit instead of a serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.pulseband")

	// Create main window
	window := application.NewWindow("Pulse Band")
	window.CenterOnScreen()

	// Panel widget stands in for the wrist unit's OLED
	panel := NewPanel(cfg.Display.Width, cfg.Display.Height)

	var device band.Device
	if *mockFlag {
		device = band.NewMock(&cfg.Mock)
		log.Println("Using simulated wrist unit")
	} else {
		device = band.NewSerial(cfg.Serial.Port, band.DefaultBaudRate, band.DefaultBufferSize)
		log.Printf("Using serial port: %s", cfg.Serial.Port)
	}

	tracker := runtime.New(cfg, device, panel, consoleBuzzer{}, time.Now())

	state := &appState{
		cfg:     cfg,
		tracker: tracker,
		panel:   panel,
		window:  window,
	}

	toolbar := createToolbar(state)

	window.SetContent(container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		panel,
	))

	ctx, cancel := context.WithCancel(context.Background())
	window.SetOnClosed(cancel)

	// The tracker loop owns all runtime state; the UI only injects button
	// levels and repaints the committed frames.
	go func() {
		if err := tracker.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Tracker stopped: %v", err)
			fyne.Do(func() {
				dialog.ShowError(fmt.Errorf("wrist unit: %w", err), window)
				panel.Refresh() // show the boot failure screen
			})
		}
	}()

	// Repaint at the tick rate; the panel renders whatever frame was
	// committed last.
	go func() {
		ticker := time.NewTicker(cfg.Tuning.TickPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(panel.Refresh)
			}
		}
	}()

	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg     *config.Config
	tracker *runtime.Tracker
	panel   *Panel
	window  fyne.Window
}

// createToolbar creates the toolbar with Settings on the left and the two
// band buttons on the right.
func createToolbar(state *appState) fyne.CanvasObject {
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	nextBtn := widget.NewButton("NEXT", func() {
		pressButton(state, input.ChanNext)
	})
	selectBtn := widget.NewButton("SELECT", func() {
		pressButton(state, input.ChanSelect)
	})

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(settingsBtn),        // left
		container.NewHBox(nextBtn, selectBtn), // right
		nil, // center (spacer)
	)
}

// pressButton injects a momentary press on the given channel. The tracker
// sees a press edge on the next tick and a release shortly after, just like a
// physical tap.
func pressButton(state *appState, ch input.Channel) {
	state.tracker.Press(ch, true)
	time.AfterFunc(tapDuration, func() {
		state.tracker.Press(ch, false)
	})
}

// consoleBuzzer logs tones instead of driving a piezo. The desktop host has
// no buzzer; the log line is enough to verify the feedback path.
type consoleBuzzer struct{}

func (consoleBuzzer) Beep(t hw.Tone) {
	log.Printf("beep %dHz for %s", t.Freq, t.Duration)
}
