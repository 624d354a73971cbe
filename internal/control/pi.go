package control

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
)

// PowerController walks the switching frequency towards the power setpoint.
// The previous frequency is the base of each update, so the output is a
// rate-limited frequency walk rather than a direct PI output.
type PowerController struct {
	kp             float64
	ki             float64
	integratorLim  float64
	minFrequencyHz float64
	maxFrequencyHz float64

	frequencyHz float64
	integrator  float64
}

func NewPowerController(config configuration.ControlConfig) *PowerController {
	return &PowerController{
		kp:             config.PowerKp,
		ki:             config.PowerKi,
		integratorLim:  config.PowerIntegratorLimit,
		minFrequencyHz: config.MinFrequencyHz,
		maxFrequencyHz: config.MaxFrequencyHz,
		frequencyHz:    config.BaseFrequencyHz,
	}
}

// Reset clears the integrator and rewinds the frequency to the given base.
func (c *PowerController) Reset(frequencyHz float64) {
	c.frequencyHz = frequencyHz
	c.integrator = 0
}

// Update advances the controller by dt seconds and returns the new switching
// frequency.
func (c *PowerController) Update(setpointKw float64, measuredKw float64, dt float64) float64 {
	err := setpointKw - measuredKw
	c.integrator = util.Coerce(c.integrator+err*c.ki*dt, -c.integratorLim, c.integratorLim)
	c.frequencyHz = util.Coerce(c.frequencyHz+c.kp*err+c.integrator, c.minFrequencyHz, c.maxFrequencyHz)
	return c.frequencyHz
}

// FrequencyHz returns the last output without advancing the controller.
func (c *PowerController) FrequencyHz() float64 {
	return c.frequencyHz
}

// Integrator is exposed for bound verification in tests.
func (c *PowerController) Integrator() float64 {
	return c.integrator
}

// TemperatureController computes the power setpoint from the object
// temperature error. The integrator cannot go negative: the controller can
// stop heating but never request cooling. Large negative excursions of the
// error are floored so the integrator does not collapse when a cold workpiece
// is swapped in.
type TemperatureController struct {
	kp         float64
	ki         float64
	errorFloor float64
	powerLimit float64

	integrator float64
}

func NewTemperatureController(config configuration.ControlConfig, powerLimitKw float64) *TemperatureController {
	return &TemperatureController{
		kp:         config.TempKp,
		ki:         config.TempKi,
		errorFloor: config.TempErrorFloorC,
		powerLimit: powerLimitKw,
	}
}

func (c *TemperatureController) Reset() {
	c.integrator = 0
}

// Update advances the controller by dt seconds and returns the power
// setpoint in kW.
func (c *TemperatureController) Update(targetC float64, measuredC float64, dt float64) float64 {
	err := targetC - measuredC
	if err < c.errorFloor {
		err = c.errorFloor
	}
	c.integrator = util.Coerce(c.integrator+err*c.ki*dt, 0, c.powerLimit)
	return util.Coerce(c.kp*err+c.integrator, 0, c.powerLimit)
}

// Integrator is exposed for bound verification in tests.
func (c *TemperatureController) Integrator() float64 {
	return c.integrator
}
