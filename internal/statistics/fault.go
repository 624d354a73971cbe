package statistics

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemFault = "fault"

var allFaultCodes = []state.FaultCode{
	state.FaultNone,
	state.FaultPowerLimit,
	state.FaultCoilOverTemp,
	state.FaultModuleOverTemp,
	state.FaultPcbOverTemp,
	state.FaultInterlockOpen,
	state.FaultGateDriverFault,
	state.FaultGateDriverNotReady,
	state.FaultSensorFault,
	state.FaultCurrentLimit,
}

type FaultCollector struct {
	store *state.Store

	active *prometheus.Desc
}

func NewFaultCollector(store *state.Store) *FaultCollector {
	return &FaultCollector{
		store: store,
		active: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemFault, "active"),
			"The currently active fault code",
			[]string{"code"}, nil,
		),
	}
}

func (collector *FaultCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.active
}

func (collector *FaultCollector) Collect(ch chan<- prometheus.Metric) {
	current := collector.store.CurrentFault()
	for _, code := range allFaultCodes {
		active := 0.0
		if code == current {
			active = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.active, prometheus.GaugeValue, active, code.String())
	}
}
