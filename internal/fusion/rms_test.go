package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRmsWindowConstantSignal(t *testing.T) {
	// GIVEN
	window := NewRmsWindow(1024, 20.0)

	// WHEN
	var result WindowResult
	done := false
	for i := 0; i < 1024; i++ {
		result, done = window.Add(100.0, 10.0)
	}

	// THEN
	assert.True(t, done)
	assert.InDelta(t, 100.0, result.VoltageRms, 0.001)
	assert.InDelta(t, 10.0, result.CurrentRms, 0.001)
	assert.InDelta(t, 1.0, result.PowerKw, 0.001)
}

func TestRmsWindowNotFullYieldsNothing(t *testing.T) {
	// GIVEN
	window := NewRmsWindow(1024, 20.0)

	// WHEN
	for i := 0; i < 1023; i++ {
		_, done := window.Add(100.0, 10.0)

		// THEN
		assert.False(t, done)
	}
}

func TestRmsWindowResetsBetweenWindows(t *testing.T) {
	// GIVEN
	window := NewRmsWindow(4, 20.0)
	for i := 0; i < 4; i++ {
		window.Add(500.0, 100.0)
	}

	// WHEN
	var result WindowResult
	done := false
	for i := 0; i < 4; i++ {
		result, done = window.Add(100.0, 10.0)
	}

	// THEN the first window must not leak into the second
	assert.True(t, done)
	assert.InDelta(t, 100.0, result.VoltageRms, 0.001)
	assert.InDelta(t, 10.0, result.CurrentRms, 0.001)
}

func TestRmsWindowPowerClamp(t *testing.T) {
	// GIVEN
	window := NewRmsWindow(4, 20.0)

	// WHEN a physically impossible reading is accumulated
	var result WindowResult
	for i := 0; i < 4; i++ {
		result, _ = window.Add(1000.0, 900.0)
	}

	// THEN
	assert.Equal(t, 20.0, result.PowerKw)
}

func TestRmsWindowNegativePowerClampsToZero(t *testing.T) {
	// GIVEN a reverse current flow
	window := NewRmsWindow(4, 20.0)

	// WHEN
	var result WindowResult
	for i := 0; i < 4; i++ {
		result, _ = window.Add(100.0, -10.0)
	}

	// THEN
	assert.Equal(t, 0.0, result.PowerKw)
	assert.InDelta(t, 10.0, result.CurrentRms, 0.001)
}

func TestPairScalerVoltage(t *testing.T) {
	// GIVEN
	scaler := PairScaler{
		AdcRefV:            3.3,
		VdcGain:            0.0018615088,
		CurrentCenterV:     1.25,
		CurrentSensitivity: 1280.0,
		MaxVoltageV:        1000.0,
		MaxCurrentA:        900.0,
	}

	// WHEN
	zero := scaler.Voltage(0)
	full := scaler.Voltage(4095)

	// THEN
	assert.Equal(t, 0.0, zero)
	assert.Equal(t, 1000.0, full)
}

func TestPairScalerCurrentIsZeroCentered(t *testing.T) {
	// GIVEN
	scaler := PairScaler{
		AdcRefV:            3.3,
		VdcGain:            0.0018615088,
		CurrentCenterV:     1.25,
		CurrentSensitivity: 1280.0,
		MaxVoltageV:        1000.0,
		MaxCurrentA:        900.0,
	}
	centerV := 1.25 / 3.3 * 4095.0
	centerCode := uint16(centerV)

	// WHEN
	current := scaler.Current(centerCode)

	// THEN
	assert.InDelta(t, 0.0, current, 1.5)
}

func TestPairScalerCurrentClamps(t *testing.T) {
	// GIVEN
	scaler := PairScaler{
		AdcRefV:            3.3,
		VdcGain:            0.0018615088,
		CurrentCenterV:     1.25,
		CurrentSensitivity: 1280.0,
		MaxVoltageV:        1000.0,
		MaxCurrentA:        900.0,
	}

	// WHEN
	high := scaler.Current(4095)
	low := scaler.Current(0)

	// THEN
	assert.Equal(t, 900.0, high)
	assert.Equal(t, -900.0, low)
}
