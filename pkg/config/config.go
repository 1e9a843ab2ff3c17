package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Display DisplayConfig `yaml:"display"`
	Tuning  TuningConfig  `yaml:"tuning"`
	Battery BatteryConfig `yaml:"battery"`
	Mock    MockConfig    `yaml:"mock"`
}

// SerialConfig contains serial port configuration for the wrist sensor board.
type SerialConfig struct {
	Port string `yaml:"port"`
}

// DisplayConfig describes the panel geometry. The waveform buffer capacity
// equals the panel width, so these are tracker parameters rather than a
// driver detail.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TuningConfig contains the signal-path calibration parameters. The defaults
// come from bench calibration of the reference sensor set; do not change them
// without recalibrating against the actual sensors.
type TuningConfig struct {
	WaveformMin      float32       `yaml:"waveform_min"`       // raw IR value mapped to the plot bottom
	WaveformMax      float32       `yaml:"waveform_max"`       // raw IR value mapped to the plot top
	StepTriggerDelta float32       `yaml:"step_trigger_delta"` // accel magnitude jump that counts as a step (g)
	StepRefractory   time.Duration `yaml:"step_refractory"`    // minimum spacing between registered steps
	IdleTimeout      time.Duration `yaml:"idle_timeout"`       // no-interaction window before display sleep
	TickPeriod       time.Duration `yaml:"tick_period"`        // main loop period
	SleepPollEvery   int           `yaml:"sleep_poll_every"`   // ticks between wake-edge polls while sleeping
}

// BatteryConfig contains the pack voltage conversion parameters.
type BatteryConfig struct {
	VRef     float64 `yaml:"vref"`      // ADC reference voltage (V)
	DividerR float64 `yaml:"divider_r"` // divider ratio, V_pack = V_adc * divider_r
	EmptyV   float64 `yaml:"empty_v"`   // pack voltage shown as 0%
	FullV    float64 `yaml:"full_v"`    // pack voltage shown as 100%
}

// MockConfig contains simulated wrist unit configuration.
type MockConfig struct {
	HeartRateBPM float64       `yaml:"heart_rate_bpm"` // simulated pulse rate
	NoiseLevel   float32       `yaml:"noise_level"`    // IR noise amplitude (raw units)
	StepPeriod   time.Duration `yaml:"step_period"`    // time between simulated step impacts
	SampleRate   time.Duration `yaml:"sample_rate"`    // frame emission period
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
		},
		Display: DisplayConfig{
			Width:  128,
			Height: 64,
		},
		Tuning: TuningConfig{
			WaveformMin:      5000,
			WaveformMax:      100000,
			StepTriggerDelta: 1.2,
			StepRefractory:   300 * time.Millisecond,
			IdleTimeout:      30 * time.Second,
			TickPeriod:       200 * time.Millisecond,
			SleepPollEvery:   3, // 600ms wake polls at the default tick period
		},
		Battery: BatteryConfig{
			VRef:     3.3,
			DividerR: 2.0, // equal divider resistors halve the pack voltage
			EmptyV:   3.3,
			FullV:    4.2,
		},
		Mock: MockConfig{
			HeartRateBPM: 72,
			NoiseLevel:   1500,
			StepPeriod:   800 * time.Millisecond,
			SampleRate:   50 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}

	if c.Display.Width <= 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = def.Display.Height
	}

	if c.Tuning.WaveformMax <= c.Tuning.WaveformMin {
		c.Tuning.WaveformMin = def.Tuning.WaveformMin
		c.Tuning.WaveformMax = def.Tuning.WaveformMax
	}
	if c.Tuning.StepTriggerDelta <= 0 {
		c.Tuning.StepTriggerDelta = def.Tuning.StepTriggerDelta
	}
	if c.Tuning.StepRefractory <= 0 {
		c.Tuning.StepRefractory = def.Tuning.StepRefractory
	}
	if c.Tuning.IdleTimeout <= 0 {
		c.Tuning.IdleTimeout = def.Tuning.IdleTimeout
	}
	if c.Tuning.TickPeriod <= 0 {
		c.Tuning.TickPeriod = def.Tuning.TickPeriod
	}
	if c.Tuning.SleepPollEvery <= 0 {
		c.Tuning.SleepPollEvery = def.Tuning.SleepPollEvery
	}

	if c.Battery.VRef <= 0 {
		c.Battery.VRef = def.Battery.VRef
	}
	if c.Battery.DividerR <= 0 {
		c.Battery.DividerR = def.Battery.DividerR
	}
	if c.Battery.FullV <= c.Battery.EmptyV {
		c.Battery.EmptyV = def.Battery.EmptyV
		c.Battery.FullV = def.Battery.FullV
	}

	if c.Mock.HeartRateBPM <= 0 {
		c.Mock.HeartRateBPM = def.Mock.HeartRateBPM
	}
	if c.Mock.StepPeriod <= 0 {
		c.Mock.StepPeriod = def.Mock.StepPeriod
	}
	if c.Mock.SampleRate <= 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}
