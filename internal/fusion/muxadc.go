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

const muxAdcMonitorId = "mux_adc"

// MuxAdcMonitor polls the multiplexed 8-channel ADC and converts the coil and
// PCB temperature sense voltages into degrees Celsius.
type MuxAdcMonitor struct {
	store       *state.Store
	adc         hal.MuxADC
	config      configuration.FusionConfig
	coilNtc     PullupNtc
	pollingRate time.Duration
}

func NewMuxAdcMonitor(store *state.Store, adc hal.MuxADC, config configuration.FusionConfig) *MuxAdcMonitor {
	return &MuxAdcMonitor{
		store:  store,
		adc:    adc,
		config: config,
		coilNtc: PullupNtc{
			Config:     config.CoilNtc,
			FullScaleV: config.MuxFullScaleV,
		},
		pollingRate: config.MuxPollingRate,
	}
}

func (m *MuxAdcMonitor) GetId() string {
	return muxAdcMonitorId
}

func (m *MuxAdcMonitor) Run(ctx context.Context) error {
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

func (m *MuxAdcMonitor) poll() {
	channels, err := m.adc.ReadAllChannels()
	if err != nil {
		ui.Warning("Mux ADC read error: %v", err)
		return
	}

	coilVoltage := CodeToVoltage(channels[m.config.CoilTempChannel], m.config.MuxFullScaleV)
	pcbVoltage := CodeToVoltage(channels[m.config.PcbTempChannel], m.config.MuxFullScaleV)

	coilTemp, disconnected := m.coilNtc.Convert(coilVoltage)
	pcbTemp := LinearPcbTemp(pcbVoltage, m.config.PcbSensor)

	m.store.Measurements.Update(func(meas *state.Measurements) {
		meas.CoilTempDisconnected = disconnected
		if !disconnected {
			meas.CoilTempC = util.Smooth(meas.CoilTempC, coilTemp, m.config.SmoothingFactor)
		}
		meas.PcbTempC = util.Smooth(meas.PcbTempC, pcbTemp, m.config.SmoothingFactor)
	})
}
