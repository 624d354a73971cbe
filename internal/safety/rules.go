package safety

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
)

// DigitalSignals is one snapshot of the safety related level inputs. All
// signals are active-low on the wire; the fields hold the decoded meaning.
type DigitalSignals struct {
	InterlockOpen bool
	GateFaulted   bool
	GateNotReady  bool
}

// faultRule maps one tripped predicate onto its fault code. The rule list is
// evaluated top to bottom, first match wins; the order encodes the priority
// intent: digital safety > sensor integrity > thermal > electrical. Do not
// reorder.
type faultRule struct {
	code    state.FaultCode
	tripped func(signals DigitalSignals, meas state.Measurements) bool
}

func buildRules(limits configuration.LimitsConfig, overshootMargin float64) []faultRule {
	return []faultRule{
		{state.FaultInterlockOpen, func(s DigitalSignals, _ state.Measurements) bool {
			return s.InterlockOpen
		}},
		{state.FaultGateDriverFault, func(s DigitalSignals, _ state.Measurements) bool {
			return s.GateFaulted
		}},
		{state.FaultGateDriverNotReady, func(s DigitalSignals, _ state.Measurements) bool {
			return s.GateNotReady
		}},
		{state.FaultSensorFault, func(_ DigitalSignals, m state.Measurements) bool {
			return m.CoilTempDisconnected
		}},
		{state.FaultCoilOverTemp, func(_ DigitalSignals, m state.Measurements) bool {
			return m.CoilTempC > limits.CoilTempC
		}},
		{state.FaultModuleOverTemp, func(_ DigitalSignals, m state.Measurements) bool {
			return m.ModuleTempC > limits.ModuleTempC
		}},
		{state.FaultPcbOverTemp, func(_ DigitalSignals, m state.Measurements) bool {
			return m.PcbTempC > limits.PcbTempC
		}},
		// power and current checks are meaningless before the first RMS
		// window has completed
		{state.FaultPowerLimit, func(_ DigitalSignals, m state.Measurements) bool {
			return m.Valid && m.CoilPowerKw > limits.PowerKw*overshootMargin
		}},
		{state.FaultCurrentLimit, func(_ DigitalSignals, m state.Measurements) bool {
			return m.Valid && m.CoilCurrentRmsA > limits.CurrentA
		}},
	}
}

// evaluate returns the highest priority fault, or FaultNone.
func evaluate(rules []faultRule, signals DigitalSignals, meas state.Measurements) state.FaultCode {
	for _, rule := range rules {
		if rule.tripped(signals, meas) {
			return rule.code
		}
	}
	return state.FaultNone
}
