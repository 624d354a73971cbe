package fusion

import (
	"context"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/hal"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
)

const (
	powerMonitorId   = "power"
	pairsPerRead     = 128
	pairSamplingTick = 5 * time.Millisecond
)

// PowerMonitor samples voltage/current pairs, computes RMS values and mean
// power over a fixed window and publishes the smoothed result. The first
// completed window marks the measurement record as valid.
type PowerMonitor struct {
	store   *state.Store
	sampler hal.PairSampler
	scaler  PairScaler
	window  *RmsWindow
	alpha   float64
}

func NewPowerMonitor(store *state.Store, sampler hal.PairSampler, config configuration.FusionConfig) *PowerMonitor {
	return &PowerMonitor{
		store:   store,
		sampler: sampler,
		scaler: PairScaler{
			AdcRefV:            config.AdcRefV,
			VdcGain:            config.VdcGain,
			CurrentCenterV:     config.CurrentCenterV,
			CurrentSensitivity: config.CurrentSensitivityAPerV,
			MaxVoltageV:        config.MaxVoltageV,
			MaxCurrentA:        config.MaxCurrentA,
		},
		window: NewRmsWindow(config.PairsPerWindow, config.MaxPowerKw),
		alpha:  config.SmoothingFactor,
	}
}

func (m *PowerMonitor) GetId() string {
	return powerMonitorId
}

func (m *PowerMonitor) Run(ctx context.Context) error {
	buf := make([]hal.SamplePair, pairsPerRead)
	tick := time.Tick(pairSamplingTick)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			n, err := m.sampler.ReadPairs(buf)
			if err != nil {
				ui.Warning("Pair sampler read error: %v", err)
				continue
			}
			for _, pair := range buf[:n] {
				m.accumulate(pair)
			}
		}
	}
}

func (m *PowerMonitor) accumulate(pair hal.SamplePair) {
	voltage := m.scaler.Voltage(pair.Voltage)
	current := m.scaler.Current(pair.Current)

	result, done := m.window.Add(voltage, current)
	if !done {
		return
	}

	m.store.Measurements.Update(func(meas *state.Measurements) {
		meas.DcVoltageV = util.Smooth(meas.DcVoltageV, result.VoltageRms, m.alpha)
		meas.CoilCurrentRmsA = util.Smooth(meas.CoilCurrentRmsA, result.CurrentRms, m.alpha)
		meas.CoilPowerKw = util.Smooth(meas.CoilPowerKw, result.PowerKw, m.alpha)
		meas.Valid = true
	})
	ui.Debug("Vdc: %.1f V, Icoil: %.1f A, Pcoil: %.2f kW",
		result.VoltageRms, result.CurrentRms, result.PowerKw)
}
