package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStoreDefaults(t *testing.T) {
	// GIVEN
	store := NewStore()

	// WHEN
	settings := store.Settings.Snapshot()
	status := store.Status.Snapshot()

	// THEN
	assert.Equal(t, ModeManualPower, settings.Mode)
	assert.Equal(t, 5.0, settings.ManualPowerKw)
	assert.Equal(t, 120.0, settings.TargetTempC)
	assert.Equal(t, ModeIdle, status.Mode)
	assert.Equal(t, FaultNone, store.CurrentFault())
}

func TestRecordSnapshotIsACopy(t *testing.T) {
	// GIVEN
	store := NewStore()
	store.Measurements.Replace(Measurements{CoilTempC: 42.0})

	// WHEN
	snapshot := store.Measurements.Snapshot()
	snapshot.CoilTempC = 99.0

	// THEN
	assert.Equal(t, 42.0, store.Measurements.Snapshot().CoilTempC)
}

func TestRecordUpdate(t *testing.T) {
	// GIVEN
	store := NewStore()

	// WHEN
	store.Measurements.Update(func(m *Measurements) {
		m.DcVoltageV = 560.0
		m.Valid = true
	})

	// THEN
	meas := store.Measurements.Snapshot()
	assert.Equal(t, 560.0, meas.DcVoltageV)
	assert.True(t, meas.Valid)
}

func TestClearFault(t *testing.T) {
	// GIVEN
	store := NewStore()
	store.Fault.Replace(FaultState{Code: FaultInterlockOpen})

	// WHEN
	store.ClearFault()

	// THEN
	assert.Equal(t, FaultNone, store.CurrentFault())
}

func TestControlModeRoundtrip(t *testing.T) {
	// GIVEN
	modes := []ControlMode{ModeIdle, ModeManualPower, ModeTemperature, ModeCooldown}

	for _, mode := range modes {
		// WHEN
		parsed, err := ParseControlMode(mode.String())

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
}

func TestParseControlModeUnknown(t *testing.T) {
	// WHEN
	_, err := ParseControlMode("warp_drive")

	// THEN
	assert.Error(t, err)
}

func TestIsHeating(t *testing.T) {
	// GIVEN
	expected := map[ControlMode]bool{
		ModeIdle:        false,
		ModeManualPower: true,
		ModeTemperature: true,
		ModeCooldown:    false,
	}

	for mode, heating := range expected {
		// THEN
		assert.Equal(t, heating, mode.IsHeating(), "mode %s", mode)
	}
}
