package band

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/pulseband/pkg/config"
)

// Mock simulates a wrist sensor board for testing and development.
type Mock struct {
	cfg *config.MockConfig

	frames    chan Frame
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Simulated button levels
	btnNext   bool
	btnSelect bool

	// Simulation state
	startTime   time.Time
	lastStep    time.Time
	impactUntil time.Time
	battRaw     float32
}

// NewMock creates a new mocked board instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			HeartRateBPM: 72,
			NoiseLevel:   1500,
			StepPeriod:   800 * time.Millisecond,
			SampleRate:   50 * time.Millisecond,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:       cfg,
		frames:    make(chan Frame, DefaultBufferSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Connect simulates connecting to the board.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()
	m.lastStep = m.startTime
	m.battRaw = 2480 // ~4.0V pack through the divider

	// Start generating frames
	go m.generateFrames()

	return nil
}

// Close stops the mocked board.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.frames)

	return nil
}

// Frames returns the channel for reading frames.
func (m *Mock) Frames() <-chan Frame {
	return m.frames
}

// SetButtons sets the simulated button levels, true meaning pressed.
func (m *Mock) SetButtons(next, sel bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}

	m.btnNext = next
	m.btnSelect = sel

	return nil
}

// IsConnected returns whether the board is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateFrames generates simulated frames.
func (m *Mock) generateFrames() {
	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			frame := m.generateFrame()
			select {
			case m.frames <- frame:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateFrame generates a single simulated frame.
func (m *Mock) generateFrame() Frame {
	m.mu.Lock()
	now := time.Now()
	elapsed := now.Sub(m.startTime)
	if now.Sub(m.lastStep) >= m.cfg.StepPeriod {
		m.lastStep = now
		// Impacts span a few samples so that slow consumers polling the
		// latest frame still see them.
		m.impactUntil = now.Add(250 * time.Millisecond)
	}
	impact := now.Before(m.impactUntil)
	btnNext := m.btnNext
	btnSelect := m.btnSelect
	// Battery drains very slowly over a session
	m.battRaw -= 0.02
	battRaw := uint16(m.battRaw)
	m.mu.Unlock()

	t := float32(elapsed.Seconds())

	// IR pulse waveform: fundamental at the heart rate plus a weaker second
	// harmonic, which roughly reproduces the systolic/diastolic shape.
	beat := float32(2 * 3.14159265 * m.cfg.HeartRateBPM / 60)
	ir := 52500 + 40000*math32.Sin(beat*t) + 12000*math32.Sin(2*beat*t+0.8)

	// Cheap deterministic noise, same trick as a noise generator without
	// pulling in a PRNG
	ir += (math32.Sin(t*137.3) + math32.Cos(t*91.7)) * m.cfg.NoiseLevel * 0.5

	// Wrist at rest sees 1g on Z; a due step shows up as one hard impact
	// sample well above the trigger delta.
	ax, ay, az := float32(0.02)*math32.Sin(t*3), float32(0.02)*math32.Cos(t*2), float32(1.0)
	if impact {
		az = 3.0
	}

	// Skin temperature ~36.6C with slow drift (TMP36 scale: 866mV nominal)
	tempRaw := uint16((0.866 + 0.004*float64(math32.Sin(t*0.05))) / 3.3 * 4095)

	return Frame{
		Timestamp: now,
		IR:        ir,
		Ax:        ax,
		Ay:        ay,
		Az:        az,
		TempRaw:   tempRaw,
		BattRaw:   battRaw,
		BtnNext:   btnNext,
		BtnSelect: btnSelect,
	}
}
