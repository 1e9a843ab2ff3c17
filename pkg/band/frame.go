package band

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frame is one sensor snapshot streamed by the wrist board.
type Frame struct {
	Timestamp time.Time
	IR        float32 // raw pulse sensor IR intensity
	Ax        float32 // acceleration, g
	Ay        float32
	Az        float32
	TempRaw   uint16 // 12-bit ADC reading (0-4095)
	BattRaw   uint16 // 12-bit ADC reading (0-4095)
	BtnNext   bool   // button levels, true while pressed
	BtnSelect bool
}

// parseFrame parses a line from the board into a Frame.
// Format: unix_micros,ir,ax_mg,ay_mg,az_mg,temp,batt,bb
// Acceleration is integer milli-g; bb is the two button levels as digits
// (next, select), already normalized so '1' means pressed.
// Example: 1234567890123,52311,12,-38,1004,1075,2047,10
func parseFrame(line string) (Frame, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 8 {
		return Frame{}, fmt.Errorf("invalid frame format: expected 8 comma-separated values, got %d", len(parts))
	}

	// Parse timestamp (unix microseconds)
	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	timestamp := time.Unix(0, timestampMicros*1000)

	ir, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid IR reading: %w", err)
	}

	var accel [3]float32
	for i, name := range []string{"ax", "ay", "az"} {
		mg, err := strconv.ParseInt(parts[2+i], 10, 32)
		if err != nil {
			return Frame{}, fmt.Errorf("invalid %s: %w", name, err)
		}
		accel[i] = float32(mg) / 1000
	}

	tempRaw, err := strconv.ParseUint(parts[5], 10, 16)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid temperature: %w", err)
	}
	if tempRaw > 4095 {
		return Frame{}, fmt.Errorf("temperature out of range: %d (max 4095)", tempRaw)
	}

	battRaw, err := strconv.ParseUint(parts[6], 10, 16)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid battery: %w", err)
	}
	if battRaw > 4095 {
		return Frame{}, fmt.Errorf("battery out of range: %d (max 4095)", battRaw)
	}

	buttons := parts[7]
	if len(buttons) != 2 || strings.Trim(buttons, "01") != "" {
		return Frame{}, fmt.Errorf("invalid button levels: %q", buttons)
	}

	return Frame{
		Timestamp: timestamp,
		IR:        float32(ir),
		Ax:        accel[0],
		Ay:        accel[1],
		Az:        accel[2],
		TempRaw:   uint16(tempRaw),
		BattRaw:   uint16(battRaw),
		BtnNext:   buttons[0] == '1',
		BtnSelect: buttons[1] == '1',
	}, nil
}
