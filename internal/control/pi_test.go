package control

import (
	"testing"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func controlConfig() configuration.ControlConfig {
	return configuration.ControlConfig{
		TickRate:        10 * time.Millisecond,
		DeadtimeNs:      512,
		BaseFrequencyHz: 29700.0,
		MinFrequencyHz:  26000.0,
		MaxFrequencyHz:  32000.0,

		RunDebounce:      80 * time.Millisecond,
		TargetToleranceC: 2.0,

		PowerKp:              50.0,
		PowerKi:              100.0,
		PowerIntegratorLimit: 2000.0,

		TempKp:          0.5,
		TempKi:          0.05,
		TempErrorFloorC: -20.0,
	}
}

func TestPowerControllerStartsAtBaseFrequency(t *testing.T) {
	// GIVEN
	controller := NewPowerController(controlConfig())

	// THEN
	assert.Equal(t, 29700.0, controller.FrequencyHz())
}

func TestPowerControllerSteadyState(t *testing.T) {
	// GIVEN a measurement exactly on the setpoint
	controller := NewPowerController(controlConfig())

	// WHEN
	frequency := controller.Update(5.0, 5.0, 0.01)

	// THEN the frequency must not move
	assert.Equal(t, 29700.0, frequency)
	assert.Equal(t, 0.0, controller.Integrator())
}

func TestPowerControllerWalksUpOnPositiveError(t *testing.T) {
	// GIVEN too little power is delivered
	controller := NewPowerController(controlConfig())

	// WHEN
	first := controller.Update(5.0, 2.0, 0.01)
	second := controller.Update(5.0, 2.0, 0.01)

	// THEN the walk continues from the previous output
	assert.Greater(t, first, 29700.0)
	assert.Greater(t, second, first)
}

func TestPowerControllerFrequencyClamp(t *testing.T) {
	// GIVEN
	controller := NewPowerController(controlConfig())

	// WHEN driven hard in both directions
	for i := 0; i < 1000; i++ {
		controller.Update(10.0, 0.0, 0.01)
	}
	high := controller.FrequencyHz()

	for i := 0; i < 1000; i++ {
		controller.Update(0.0, 10.0, 0.01)
	}
	low := controller.FrequencyHz()

	// THEN
	assert.Equal(t, 32000.0, high)
	assert.Equal(t, 26000.0, low)
}

func TestPowerControllerIntegratorBounds(t *testing.T) {
	// GIVEN
	controller := NewPowerController(controlConfig())

	// WHEN an absurd error is integrated for a long time
	for i := 0; i < 10000; i++ {
		controller.Update(1000.0, 0.0, 0.01)
	}

	// THEN
	assert.LessOrEqual(t, controller.Integrator(), 2000.0)
	assert.GreaterOrEqual(t, controller.Integrator(), -2000.0)
}

func TestPowerControllerReset(t *testing.T) {
	// GIVEN a wound-up controller
	controller := NewPowerController(controlConfig())
	for i := 0; i < 100; i++ {
		controller.Update(10.0, 0.0, 0.01)
	}

	// WHEN
	controller.Reset(29700.0)

	// THEN
	assert.Equal(t, 29700.0, controller.FrequencyHz())
	assert.Equal(t, 0.0, controller.Integrator())
}

func TestTemperatureControllerOutputBounds(t *testing.T) {
	// GIVEN
	controller := NewTemperatureController(controlConfig(), 10.0)

	// WHEN far below target
	high := controller.Update(120.0, 20.0, 0.01)

	// THEN the setpoint cannot exceed the machine power limit
	assert.LessOrEqual(t, high, 10.0)
	assert.Greater(t, high, 0.0)
}

func TestTemperatureControllerNeverRequestsCooling(t *testing.T) {
	// GIVEN a workpiece far above target
	controller := NewTemperatureController(controlConfig(), 10.0)

	// WHEN
	output := controller.Update(120.0, 500.0, 0.01)

	// THEN
	assert.Equal(t, 0.0, output)
	assert.GreaterOrEqual(t, controller.Integrator(), 0.0)
}

func TestTemperatureControllerErrorFloor(t *testing.T) {
	// GIVEN a controller with some accumulated integrator
	controller := NewTemperatureController(controlConfig(), 10.0)
	for i := 0; i < 100; i++ {
		controller.Update(120.0, 20.0, 0.01)
	}
	wound := controller.Integrator()
	assert.Greater(t, wound, 0.0)

	// WHEN a hot workpiece is swapped in for one update
	controller.Update(120.0, 500.0, 0.01)

	// THEN the integrator drains at the floored rate, it does not collapse
	expectedDrain := 20.0 * 0.05 * 0.01
	assert.InDelta(t, wound-expectedDrain, controller.Integrator(), 0.0001)
}

func TestTemperatureControllerReset(t *testing.T) {
	// GIVEN
	controller := NewTemperatureController(controlConfig(), 10.0)
	controller.Update(120.0, 20.0, 0.01)

	// WHEN
	controller.Reset()

	// THEN
	assert.Equal(t, 0.0, controller.Integrator())
}
