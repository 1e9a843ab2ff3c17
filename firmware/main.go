//go:generate tinygo flash -target=xiao
//go:build tinygo


package main

import (
	"machine"
	"time"
)

var (
	adcIR   machine.ADC
	adcAX   machine.ADC
	adcAY   machine.ADC
	adcAZ   machine.ADC
	adcTemp machine.ADC
	adcBatt machine.ADC
	uart    = machine.UART0

	// ADC accumulation - running sums and count over one output window.
	// The IR sum is reported whole (oversampling stretches the 12-bit ADC
	// into the 0..~204k range the host plots); the rest are averaged.
	irSum    uint32
	axSum    uint32
	aySum    uint32
	azSum    uint32
	tempSum  uint32
	battSum  uint32
	adcCount int

	// Timing
	lastADCRead time.Time
)

func main() {
	// Configure button pins with pull-ups (pressed pulls low)
	PIN_BTN_NEXT.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	PIN_BTN_SELECT.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	// Configure ADC pins and set up ADCs with highest resolution
	PIN_IR.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_AX.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_AY.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_AZ.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_TEMP.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_BATT.Configure(machine.PinConfig{Mode: machine.PinInput})

	adcIR = machine.ADC{Pin: PIN_IR}
	adcAX = machine.ADC{Pin: PIN_AX}
	adcAY = machine.ADC{Pin: PIN_AY}
	adcAZ = machine.ADC{Pin: PIN_AZ}
	adcTemp = machine.ADC{Pin: PIN_TEMP}
	adcBatt = machine.ADC{Pin: PIN_BATT}

	adcConfig := machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	}

	adcIR.Configure(adcConfig)
	adcAX.Configure(adcConfig)
	adcAY.Configure(adcConfig)
	adcAZ.Configure(adcConfig)
	adcTemp.Configure(adcConfig)
	adcBatt.Configure(adcConfig)

	// Configure UART for the frame stream
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	// Initialize timing
	lastADCRead = time.Now()

	// Main loop
	for {
		now := time.Now()

		// Read all ADCs at the same rate (every 1ms)
		if now.Sub(lastADCRead) >= time.Duration(SAMPLE_INTERVAL_MS)*time.Millisecond {
			readSensors()
			lastADCRead = now
		}

		// Emit one frame per full sample window
		if adcCount >= NUM_SAMPLES {
			outputFrame()
			irSum = 0
			axSum = 0
			aySum = 0
			azSum = 0
			tempSum = 0
			battSum = 0
			adcCount = 0
		}

		// Small delay to prevent tight loop (but still allow precise timing)
		time.Sleep(100 * time.Microsecond)
	}
}

func readSensors() {
	irSum += uint32(adcIR.Get())
	axSum += uint32(adcAX.Get())
	aySum += uint32(adcAY.Get())
	azSum += uint32(adcAZ.Get())
	tempSum += uint32(adcTemp.Get())
	battSum += uint32(adcBatt.Get())
	adcCount++
}

// accelMilliG converts an averaged accelerometer ADC count to signed milli-g.
func accelMilliG(sum uint32, n int) int32 {
	avg := int32(sum / uint32(n))
	return (avg - ACCEL_ZERO_G_COUNTS) * 1000 / ACCEL_COUNTS_PER_G
}

func outputFrame() {
	n := adcCount
	if n == 0 {
		n = 1 // Avoid division by zero
	}

	tempAvg := uint16(tempSum / uint32(n))
	battAvg := uint16(battSum / uint32(n))

	// Get timestamp in unix microseconds
	now := time.Now()
	timestampMicros := now.UnixNano() / 1000 // Convert nanoseconds to microseconds

	// Output format: "unix_micros,ir,ax_mg,ay_mg,az_mg,temp,batt,bb\n"
	// where bb is btnNext btnSelect, '1' meaning pressed.
	// Example: "1234567890123456,204750,-12,34,1002,1075,2480,01\n"
	print(timestampMicros)
	print(",")
	print(irSum)
	print(",")
	print(accelMilliG(axSum, n))
	print(",")
	print(accelMilliG(aySum, n))
	print(",")
	print(accelMilliG(azSum, n))
	print(",")
	print(tempAvg)
	print(",")
	print(battAvg)
	print(",")
	// Buttons are active low; normalize so '1' always means pressed
	if !PIN_BTN_NEXT.Get() {
		print("1")
	} else {
		print("0")
	}
	if !PIN_BTN_SELECT.Get() {
		print("1")
	} else {
		print("0")
	}
	print("\n")
}
