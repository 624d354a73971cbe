package fusion

import (
	"context"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/hal"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
	"github.com/asecurityteam/rolling"
)

const moduleMonitorId = "module_temp"

// ModuleTempMonitor decodes the duty-cycle encoded power module temperature.
// A fixed number of duty samples is averaged per published update.
type ModuleTempMonitor struct {
	store       *state.Store
	capture     hal.DutyCapture
	decoder     DutyDecoder
	dutyWindow  *rolling.PointPolicy
	dutySamples int
	alpha       float64
	pollingRate time.Duration
}

func NewModuleTempMonitor(store *state.Store, capture hal.DutyCapture, config configuration.FusionConfig) *ModuleTempMonitor {
	return &ModuleTempMonitor{
		store:       store,
		capture:     capture,
		decoder:     DutyDecoder{Config: config.Module},
		dutyWindow:  util.CreateRollingWindow(config.Module.DutySamples),
		dutySamples: config.Module.DutySamples,
		alpha:       config.SmoothingFactor,
		pollingRate: config.ModulePollingRate,
	}
}

func (m *ModuleTempMonitor) GetId() string {
	return moduleMonitorId
}

func (m *ModuleTempMonitor) Run(ctx context.Context) error {
	tick := time.Tick(m.pollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			m.poll()
		}
	}
}

func (m *ModuleTempMonitor) poll() {
	collected := 0
	for collected < m.dutySamples {
		high, period, err := m.capture.ReadCycle()
		if err != nil {
			ui.Warning("Duty capture read error: %v", err)
			return
		}
		duty, ok := m.decoder.Duty(high, period)
		if !ok {
			continue
		}
		m.dutyWindow.Append(duty)
		collected++
	}

	duty := m.dutyWindow.Reduce(rolling.Avg)
	moduleTemp := m.decoder.TempFromDuty(duty)

	m.store.Measurements.Update(func(meas *state.Measurements) {
		meas.ModuleTempC = util.Smooth(meas.ModuleTempC, moduleTemp, m.alpha)
	})
}
