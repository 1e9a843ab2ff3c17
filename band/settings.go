package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/pulseband/pkg/band"
)

// showSettingsDialog displays a settings dialog with tabs for all
// configuration options. Tuning and battery changes are saved to the config
// file but apply on the next start; the running tracker keeps the values it
// booted with.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createTuningTab(state),
		createBatteryTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := band.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
		currentDisplay = currentPort
	}

	portSelect := widget.NewSelect(portOptions, func(selected string) {
		// Selection handler - applied on submit
	})
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
		},
		OnSubmit: func() {
			if portSelect.Selected == "" {
				return
			}
			selectedPort := portMap[portSelect.Selected]
			if selectedPort == "" {
				selectedPort = portSelect.Selected // Fallback to selected text
			}

			state.cfg.Serial.Port = selectedPort
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createTuningTab creates the signal-path calibration tab.
func createTuningTab(state *appState) *container.TabItem {
	waveMinEntry := widget.NewEntry()
	waveMinEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Tuning.WaveformMin))

	waveMaxEntry := widget.NewEntry()
	waveMaxEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Tuning.WaveformMax))

	stepDeltaEntry := widget.NewEntry()
	stepDeltaEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Tuning.StepTriggerDelta))

	stepRefractoryEntry := widget.NewEntry()
	stepRefractoryEntry.SetText(state.cfg.Tuning.StepRefractory.String())

	idleTimeoutEntry := widget.NewEntry()
	idleTimeoutEntry.SetText(state.cfg.Tuning.IdleTimeout.String())

	tickPeriodEntry := widget.NewEntry()
	tickPeriodEntry.SetText(state.cfg.Tuning.TickPeriod.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Waveform Min (raw)", Widget: waveMinEntry},
			{Text: "Waveform Max (raw)", Widget: waveMaxEntry},
			{Text: "Step Trigger Delta (g)", Widget: stepDeltaEntry},
			{Text: "Step Refractory", Widget: stepRefractoryEntry},
			{Text: "Idle Timeout", Widget: idleTimeoutEntry},
			{Text: "Tick Period", Widget: tickPeriodEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(waveMinEntry.Text, 32); err == nil {
				state.cfg.Tuning.WaveformMin = float32(v)
			}
			if v, err := strconv.ParseFloat(waveMaxEntry.Text, 32); err == nil {
				state.cfg.Tuning.WaveformMax = float32(v)
			}
			if v, err := strconv.ParseFloat(stepDeltaEntry.Text, 32); err == nil {
				state.cfg.Tuning.StepTriggerDelta = float32(v)
			}
			if d, err := time.ParseDuration(stepRefractoryEntry.Text); err == nil {
				state.cfg.Tuning.StepRefractory = d
			}
			if d, err := time.ParseDuration(idleTimeoutEntry.Text); err == nil {
				state.cfg.Tuning.IdleTimeout = d
			}
			if d, err := time.ParseDuration(tickPeriodEntry.Text); err == nil {
				state.cfg.Tuning.TickPeriod = d
			}
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Tuning", form)
}

// createBatteryTab creates the battery conversion tab.
func createBatteryTab(state *appState) *container.TabItem {
	vrefEntry := widget.NewEntry()
	vrefEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Battery.VRef))

	dividerEntry := widget.NewEntry()
	dividerEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Battery.DividerR))

	emptyEntry := widget.NewEntry()
	emptyEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Battery.EmptyV))

	fullEntry := widget.NewEntry()
	fullEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Battery.FullV))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "VRef (V)", Widget: vrefEntry},
			{Text: "Divider Ratio", Widget: dividerEntry},
			{Text: "Empty (V)", Widget: emptyEntry},
			{Text: "Full (V)", Widget: fullEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(vrefEntry.Text, 64); err == nil {
				state.cfg.Battery.VRef = v
			}
			if v, err := strconv.ParseFloat(dividerEntry.Text, 64); err == nil {
				state.cfg.Battery.DividerR = v
			}
			if v, err := strconv.ParseFloat(emptyEntry.Text, 64); err == nil {
				state.cfg.Battery.EmptyV = v
			}
			if v, err := strconv.ParseFloat(fullEntry.Text, 64); err == nil {
				state.cfg.Battery.FullV = v
			}
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Battery", form)
}

// createMockTab creates the simulated wrist unit configuration tab.
func createMockTab(state *appState) *container.TabItem {
	bpmEntry := widget.NewEntry()
	bpmEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Mock.HeartRateBPM))

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Mock.NoiseLevel))

	stepPeriodEntry := widget.NewEntry()
	stepPeriodEntry.SetText(state.cfg.Mock.StepPeriod.String())

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Heart Rate (BPM)", Widget: bpmEntry},
			{Text: "Noise Level (raw)", Widget: noiseEntry},
			{Text: "Step Period", Widget: stepPeriodEntry},
			{Text: "Sample Rate", Widget: sampleRateEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(bpmEntry.Text, 64); err == nil {
				state.cfg.Mock.HeartRateBPM = v
			}
			if v, err := strconv.ParseFloat(noiseEntry.Text, 32); err == nil {
				state.cfg.Mock.NoiseLevel = float32(v)
			}
			if d, err := time.ParseDuration(stepPeriodEntry.Text); err == nil {
				state.cfg.Mock.StepPeriod = d
			}
			if d, err := time.ParseDuration(sampleRateEntry.Text); err == nil {
				state.cfg.Mock.SampleRate = d
			}
			if err := state.cfg.Save("config.yaml"); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
