// Package scale holds the linear conversions between raw sensor readings and
// the physical or pixel values the tracker displays.
package scale

import "github.com/chewxy/math32"

// Linear maps v from [inMin, inMax] to [outMin, outMax] without clamping.
func Linear(v, inMin, inMax, outMin, outMax float32) float32 {
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Column maps a raw IR reading into a waveform column height in
// [0, plotHeight-1]. Out-of-range readings clamp to the plot band instead of
// aliasing across it.
func Column(raw, rawMin, rawMax float32, plotHeight int) int {
	h := Linear(raw, rawMin, rawMax, 0, float32(plotHeight-1))
	h = math32.Round(h)
	if h < 0 {
		return 0
	}
	if h > float32(plotHeight-1) {
		return plotHeight - 1
	}
	return int(h)
}

// adcMax is the full-scale value of the board's 12-bit ADCs.
const adcMax = 4095.0

// ADCToVolts converts a 12-bit ADC reading to voltage.
func ADCToVolts(adc uint16, vref float64) float64 {
	return (float64(adc) / adcMax) * vref
}

// BatteryVolts converts a raw battery ADC reading to pack voltage, undoing
// the input divider.
func BatteryVolts(adc uint16, vref, dividerR float64) float64 {
	return ADCToVolts(adc, vref) * dividerR
}

// BatteryPercent maps pack voltage onto a 0-100 charge estimate, clamped.
// The pack discharge curve is far from linear; this is the usual cheap
// approximation for a gauge with no coulomb counter.
func BatteryPercent(volts, emptyV, fullV float64) int {
	if fullV <= emptyV {
		return 0
	}
	pct := (volts - emptyV) / (fullV - emptyV) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct + 0.5)
}

// TemperatureC converts a raw thermistor-amplifier ADC reading to degrees
// Celsius. The front end is a TMP36-class linear sensor: 500mV offset,
// 10mV/°C.
func TemperatureC(adc uint16, vref float64) float64 {
	mv := ADCToVolts(adc, vref) * 1000
	return (mv - 500) / 10
}
