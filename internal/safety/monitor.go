package safety

import (
	"context"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/hal"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
)

// Inputs are the digital safety signals consumed by the monitor.
type Inputs struct {
	Interlock hal.DigitalInput
	GateFault hal.DigitalInput
	GateReady hal.DigitalInput
}

// Monitor polls the digital interlock signals and the fused measurements,
// evaluates the fixed-priority fault table and keeps the shared fault record
// up to date. Faults clear automatically once the underlying condition
// resolves; transitions in either direction are logged.
type Monitor struct {
	store  *state.Store
	inputs Inputs
	rules  []faultRule
	config configuration.SafetyConfig
	limits configuration.LimitsConfig

	lastWarning time.Time
}

func NewMonitor(store *state.Store, inputs Inputs, limits configuration.LimitsConfig, config configuration.SafetyConfig) *Monitor {
	return &Monitor{
		store:  store,
		inputs: inputs,
		rules:  buildRules(limits, config.PowerOvershootMargin),
		config: config,
		limits: limits,
	}
}

func (m *Monitor) Run(ctx context.Context) error {
	tick := time.Tick(m.config.PollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			m.poll(time.Now())
		}
	}
}

func (m *Monitor) poll(now time.Time) {
	signals := DigitalSignals{
		InterlockOpen: m.inputs.Interlock.IsLow(),
		GateFaulted:   m.inputs.GateFault.IsLow(),
		GateNotReady:  m.inputs.GateReady.IsLow(),
	}
	meas := m.store.Measurements.Snapshot()

	code := evaluate(m.rules, signals, meas)
	previous := m.store.CurrentFault()

	// only write on change so consumers can edge-trigger on the record
	if code != previous {
		m.store.Fault.Replace(state.FaultState{Code: code})
		if previous == state.FaultNone {
			ui.Warning("Fault detected: %s", code.Message())
		} else if code == state.FaultNone {
			ui.Info("Fault cleared: %s", previous.Message())
		} else {
			ui.Warning("Fault changed: %s -> %s", previous.Message(), code.Message())
		}
	}

	m.watchdog(now, code, meas)
}

// watchdog emits a bounded-rate log line whenever a fault is active or a
// monitored value approaches its limit. Observability only, no control
// decisions are made here.
func (m *Monitor) watchdog(now time.Time, code state.FaultCode, meas state.Measurements) {
	if now.Sub(m.lastWarning) < m.config.WarningInterval {
		return
	}

	margin := m.config.TempWarningMarginC
	nearLimit := meas.CoilTempC > m.limits.CoilTempC-margin ||
		meas.ModuleTempC > m.limits.ModuleTempC-margin ||
		meas.PcbTempC > m.limits.PcbTempC-margin ||
		(meas.Valid && meas.CoilPowerKw > m.limits.PowerKw*m.config.PowerWarningRatio)

	if code == state.FaultNone && !nearLimit {
		return
	}
	m.lastWarning = now

	if code != state.FaultNone {
		ui.Warning("Fault active: %s", code.Message())
		return
	}
	ui.Warning("Approaching limits: coil %.1f/%.0f C, module %.1f/%.0f C, pcb %.1f/%.0f C, power %.1f/%.1f kW",
		meas.CoilTempC, m.limits.CoilTempC,
		meas.ModuleTempC, m.limits.ModuleTempC,
		meas.PcbTempC, m.limits.PcbTempC,
		meas.CoilPowerKw, m.limits.PowerKw)
}
