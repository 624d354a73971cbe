package fusion

import (
	"math"

	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
)

// WindowResult is the outcome of one completed RMS window.
type WindowResult struct {
	VoltageRms float64
	CurrentRms float64
	PowerKw    float64
}

// RmsWindow accumulates voltage/current sample pairs and produces RMS values
// and mean power once the configured number of pairs has been collected.
type RmsWindow struct {
	pairsPerWindow int
	maxPowerKw     float64

	sumVoltageSq float64
	sumCurrentSq float64
	sumProduct   float64
	pairs        int
}

func NewRmsWindow(pairsPerWindow int, maxPowerKw float64) *RmsWindow {
	return &RmsWindow{
		pairsPerWindow: pairsPerWindow,
		maxPowerKw:     maxPowerKw,
	}
}

// Add accumulates one pair of physical values. When the window is full it
// returns the result and resets for the next window.
func (w *RmsWindow) Add(voltageV float64, currentA float64) (WindowResult, bool) {
	w.sumVoltageSq += voltageV * voltageV
	w.sumCurrentSq += currentA * currentA
	w.sumProduct += voltageV * currentA
	w.pairs++

	if w.pairs < w.pairsPerWindow {
		return WindowResult{}, false
	}

	count := float64(w.pairs)
	result := WindowResult{
		VoltageRms: math.Sqrt(math.Max(w.sumVoltageSq/count, 0)),
		CurrentRms: math.Sqrt(math.Max(w.sumCurrentSq/count, 0)),
		PowerKw:    util.Coerce(math.Max(w.sumProduct/count, 0)/1000.0, 0, w.maxPowerKw),
	}

	w.sumVoltageSq = 0
	w.sumCurrentSq = 0
	w.sumProduct = 0
	w.pairs = 0

	return result, true
}

// PairScaler converts raw 12-bit codes from the paired sampler into physical
// bus voltage and coil current. The current sensor is bidirectional and
// zero-centered.
type PairScaler struct {
	AdcRefV            float64
	VdcGain            float64
	CurrentCenterV     float64
	CurrentSensitivity float64
	MaxVoltageV        float64
	MaxCurrentA        float64
}

func (s PairScaler) Voltage(code uint16) float64 {
	adcVolts := float64(code) * (s.AdcRefV / 4095.0)
	return util.Coerce(adcVolts/s.VdcGain, 0, s.MaxVoltageV)
}

func (s PairScaler) Current(code uint16) float64 {
	adcVolts := float64(code) * (s.AdcRefV / 4095.0)
	return util.Coerce((adcVolts-s.CurrentCenterV)*s.CurrentSensitivity, -s.MaxCurrentA, s.MaxCurrentA)
}
