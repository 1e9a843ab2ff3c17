package band

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	f, err := parseFrame("1234567890123,52311,12,-38,1004,1075,2047,10")

	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 1234567890123*1000), f.Timestamp)
	assert.Equal(t, float32(52311), f.IR)
	assert.InDelta(t, 0.012, f.Ax, 0.0001)
	assert.InDelta(t, -0.038, f.Ay, 0.0001)
	assert.InDelta(t, 1.004, f.Az, 0.0001)
	assert.Equal(t, uint16(1075), f.TempRaw)
	assert.Equal(t, uint16(2047), f.BattRaw)
	assert.True(t, f.BtnNext)
	assert.False(t, f.BtnSelect)
}

func TestParseFrame_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{
			name: "too few fields",
			line: "123,52311,12,-38,1004,1075,2047",
		},
		{
			name: "too many fields",
			line: "123,52311,12,-38,1004,1075,2047,10,extra",
		},
		{
			name: "bad timestamp",
			line: "abc,52311,12,-38,1004,1075,2047,10",
		},
		{
			name: "bad IR",
			line: "123,-1,12,-38,1004,1075,2047,10",
		},
		{
			name: "bad acceleration",
			line: "123,52311,x,-38,1004,1075,2047,10",
		},
		{
			name: "temperature out of range",
			line: "123,52311,12,-38,1004,9999,2047,10",
		},
		{
			name: "battery out of range",
			line: "123,52311,12,-38,1004,1075,9999,10",
		},
		{
			name: "button field too short",
			line: "123,52311,12,-38,1004,1075,2047,1",
		},
		{
			name: "button field not binary",
			line: "123,52311,12,-38,1004,1075,2047,1x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFrame(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestParseFrame_ButtonCombinations(t *testing.T) {
	tests := []struct {
		bb       string
		next     bool
		selected bool
	}{
		{bb: "00", next: false, selected: false},
		{bb: "10", next: true, selected: false},
		{bb: "01", next: false, selected: true},
		{bb: "11", next: true, selected: true},
	}

	for _, tt := range tests {
		t.Run(tt.bb, func(t *testing.T) {
			f, err := parseFrame("123,52311,0,0,1000,1075,2047," + tt.bb)
			require.NoError(t, err)
			assert.Equal(t, tt.next, f.BtnNext)
			assert.Equal(t, tt.selected, f.BtnSelect)
		})
	}
}
