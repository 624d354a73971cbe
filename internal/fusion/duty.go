package fusion

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
)

// DutyDecoder converts the duty cycle of the temperature-to-duty IC into the
// module temperature. Duty maps linearly onto a sense voltage through two
// calibration points; the mapping is inverted, a higher duty means a lower
// voltage. The voltage maps onto an NTC resistance through the IC's current
// source.
type DutyDecoder struct {
	Config configuration.ModuleSensorConfig
}

// Duty computes the clamped duty cycle from one captured signal cycle.
func (d DutyDecoder) Duty(high float64, period float64) (float64, bool) {
	if period <= 0 || high < 0 {
		return 0, false
	}
	return util.Coerce(high/period, d.Config.MinDuty, d.Config.MaxDuty), true
}

// VoltageFromDuty interpolates the sense voltage between the two calibration
// points.
func (d DutyDecoder) VoltageFromDuty(duty float64) float64 {
	c := d.Config
	slope := (c.HighDutyV - c.LowDutyV) / (c.HighDuty - c.LowDuty)
	return c.LowDutyV + slope*(duty-c.LowDuty)
}

// TempFromDuty runs the full decode chain: duty -> voltage -> resistance ->
// degrees Celsius.
func (d DutyDecoder) TempFromDuty(duty float64) float64 {
	c := d.Config
	voltage := d.VoltageFromDuty(duty)
	resistance := voltage/c.SourceCurrentA - c.SeriesResistance
	return NtcBetaTemp(resistance, c.Beta, c.R0, c.T0C)
}
