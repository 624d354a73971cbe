package fusion

import (
	"math"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
)

const kelvinOffset = 273.15

// CodeToVoltage converts a 12-bit ADC code into the sense voltage for the
// given full-scale reference.
func CodeToVoltage(code uint16, fullScaleV float64) float64 {
	return float64(code) / 4095.0 * fullScaleV
}

// NtcBetaTemp converts an NTC resistance into degrees Celsius using the Beta
// equation 1/T = 1/T0 + ln(R/R0)/beta.
func NtcBetaTemp(resistance float64, beta float64, r0 float64, t0C float64) float64 {
	if resistance <= 10.0 {
		return 0.0
	}
	t0K := t0C + kelvinOffset
	invT := 1.0/t0K + math.Log(resistance/r0)/beta
	return 1.0/invT - kelvinOffset
}

// PullupNtc converts the sense voltage of an NTC in a pull-up divider into
// degrees Celsius. A voltage saturated near either rail indicates an
// open-circuit (disconnected) thermistor.
type PullupNtc struct {
	Config     configuration.NtcDividerConfig
	FullScaleV float64
}

func (n PullupNtc) Convert(voltage float64) (tempC float64, disconnected bool) {
	if voltage <= 0.01 || voltage >= n.FullScaleV-0.01 {
		return 0.0, true
	}
	resistance := n.Config.SeriesResistance * voltage / (n.FullScaleV - voltage)
	return NtcBetaTemp(resistance, n.Config.Beta, n.Config.R0, n.Config.T0C), false
}

// LinearPcbTemp converts the PCB sensor voltage using its offset/scale model,
// clamped to the sensor operating range.
func LinearPcbTemp(voltage float64, config configuration.PcbSensorConfig) float64 {
	temp := (voltage - config.OffsetV) / config.VoltsPerDegree
	return util.Coerce(temp, config.MinTempC, config.MaxTempC)
}
