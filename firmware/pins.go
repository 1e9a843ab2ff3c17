//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 1  // ADC read interval in milliseconds (same for all channels)
	NUM_SAMPLES        = 50 // Samples per output frame (50 x 1ms = 20 frames/sec)

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)

	// Accelerometer scale (ADXL335-class analog part on a 3.3V rail):
	// 1.65V at 0g and 330mV/g, so mid-scale counts at rest and ~409 counts per g.
	ACCEL_ZERO_G_COUNTS = 2048
	ACCEL_COUNTS_PER_G  = 409

	// Analog inputs
	PIN_IR   = machine.A0  // IR pulse sensor
	PIN_AX   = machine.A1  // accelerometer X
	PIN_AY   = machine.A2  // accelerometer Y
	PIN_AZ   = machine.A3  // accelerometer Z
	PIN_TEMP = machine.A4  // TMP36 skin temperature
	PIN_BATT = machine.A10 // battery pack through the input divider

	// Buttons, active low with internal pull-ups
	PIN_BTN_NEXT   = machine.D7
	PIN_BTN_SELECT = machine.D8

	// Serial configuration
	// Frame format: "unix_micros,ir,ax_mg,ay_mg,az_mg,temp,batt,bb\n"
	// Example: "1234567890123456,204750,-12,34,1002,1075,2480,01\n" = ~50 bytes max
	// 20 frames/sec * 50 bytes/line = 1,000 bytes/sec
	// UART 8N1: 10 bits/byte = 10,000 baud minimum. 115200 gives >11x headroom.
	UART_BAUD_RATE = 115200
)
