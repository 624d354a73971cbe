package statistics

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemMeasurements = "measurements"

type MeasurementsCollector struct {
	store *state.Store

	dcVoltage   *prometheus.Desc
	coilCurrent *prometheus.Desc
	coilPower   *prometheus.Desc
	temperature *prometheus.Desc
	valid       *prometheus.Desc
}

func NewMeasurementsCollector(store *state.Store) *MeasurementsCollector {
	return &MeasurementsCollector{
		store: store,
		dcVoltage: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemMeasurements, "dc_voltage_volts"),
			"RMS DC bus voltage",
			nil, nil,
		),
		coilCurrent: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemMeasurements, "coil_current_amperes"),
			"RMS coil current",
			nil, nil,
		),
		coilPower: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemMeasurements, "coil_power_kilowatts"),
			"Mean coil power",
			nil, nil,
		),
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemMeasurements, "temperature_celsius"),
			"Fused temperature measurements",
			[]string{"sensor"}, nil,
		),
		valid: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemMeasurements, "valid"),
			"Whether the first RMS window has completed",
			nil, nil,
		),
	}
}

func (collector *MeasurementsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.dcVoltage
	ch <- collector.coilCurrent
	ch <- collector.coilPower
	ch <- collector.temperature
	ch <- collector.valid
}

// Collect implements the required collect function for all prometheus collectors
func (collector *MeasurementsCollector) Collect(ch chan<- prometheus.Metric) {
	meas := collector.store.Measurements.Snapshot()

	ch <- prometheus.MustNewConstMetric(collector.dcVoltage, prometheus.GaugeValue, meas.DcVoltageV)
	ch <- prometheus.MustNewConstMetric(collector.coilCurrent, prometheus.GaugeValue, meas.CoilCurrentRmsA)
	ch <- prometheus.MustNewConstMetric(collector.coilPower, prometheus.GaugeValue, meas.CoilPowerKw)
	ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, meas.CoilTempC, "coil")
	ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, meas.PcbTempC, "pcb")
	ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, meas.ModuleTempC, "module")
	ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, meas.ObjectTempC, "object")
	ch <- prometheus.MustNewConstMetric(collector.valid, prometheus.GaugeValue, boolToGauge(meas.Valid))
}

func boolToGauge(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
