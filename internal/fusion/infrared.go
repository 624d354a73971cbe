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

const infraredMonitorId = "infrared"

// InfraredMonitor polls the infrared thermometer for the workpiece object
// temperature. The driver already delivers degrees Celsius.
type InfraredMonitor struct {
	store       *state.Store
	sensor      hal.InfraredSensor
	alpha       float64
	pollingRate time.Duration
}

func NewInfraredMonitor(store *state.Store, sensor hal.InfraredSensor, config configuration.FusionConfig) *InfraredMonitor {
	return &InfraredMonitor{
		store:       store,
		sensor:      sensor,
		alpha:       config.SmoothingFactor,
		pollingRate: config.IrPollingRate,
	}
}

func (m *InfraredMonitor) GetId() string {
	return infraredMonitorId
}

func (m *InfraredMonitor) Run(ctx context.Context) error {
	tick := time.Tick(m.pollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			temp, err := m.sensor.ReadObjectTemperature()
			if err != nil {
				ui.Warning("Infrared sensor read error: %v", err)
				continue
			}
			m.store.Measurements.Update(func(meas *state.Measurements) {
				meas.ObjectTempC = util.Smooth(meas.ObjectTempC, temp, m.alpha)
			})
		}
	}
}
