package statistics

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemControl = "control"

type ControlCollector struct {
	store *state.Store

	mode          *prometheus.Desc
	heating       *prometheus.Desc
	runActive     *prometheus.Desc
	targetReached *prometheus.Desc
	cooldown      *prometheus.Desc
	powerSetpoint *prometheus.Desc
	switchingFreq *prometheus.Desc
}

func NewControlCollector(store *state.Store) *ControlCollector {
	return &ControlCollector{
		store: store,
		mode: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "mode"),
			"Active control mode",
			[]string{"mode"}, nil,
		),
		heating: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "heating_enabled"),
			"Whether the power stage is delivering energy",
			nil, nil,
		),
		runActive: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "run_active"),
			"State of the run latch",
			nil, nil,
		),
		targetReached: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "target_reached"),
			"Whether the object temperature entered the acceptance band",
			nil, nil,
		),
		cooldown: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "cooldown_active"),
			"Whether the coolant solenoid is open",
			nil, nil,
		),
		powerSetpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "power_setpoint_kilowatts"),
			"Power setpoint of the inner control loop",
			nil, nil,
		),
		switchingFreq: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "switching_frequency_hertz"),
			"Commanded power stage switching frequency",
			nil, nil,
		),
	}
}

func (collector *ControlCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.mode
	ch <- collector.heating
	ch <- collector.runActive
	ch <- collector.targetReached
	ch <- collector.cooldown
	ch <- collector.powerSetpoint
	ch <- collector.switchingFreq
}

func (collector *ControlCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.store.Status.Snapshot()

	for _, mode := range []state.ControlMode{
		state.ModeIdle, state.ModeManualPower, state.ModeTemperature, state.ModeCooldown,
	} {
		active := 0.0
		if status.Mode == mode {
			active = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, active, mode.String())
	}

	ch <- prometheus.MustNewConstMetric(collector.heating, prometheus.GaugeValue, boolToGauge(status.HeatingEnabled))
	ch <- prometheus.MustNewConstMetric(collector.runActive, prometheus.GaugeValue, boolToGauge(status.RunActive))
	ch <- prometheus.MustNewConstMetric(collector.targetReached, prometheus.GaugeValue, boolToGauge(status.TargetReached))
	ch <- prometheus.MustNewConstMetric(collector.cooldown, prometheus.GaugeValue, boolToGauge(status.CooldownActive))
	ch <- prometheus.MustNewConstMetric(collector.powerSetpoint, prometheus.GaugeValue, status.PowerSetpointKw)
	ch <- prometheus.MustNewConstMetric(collector.switchingFreq, prometheus.GaugeValue, status.SwitchingFreqHz)
}
