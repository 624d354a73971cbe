package configuration

import "time"

// FusionConfig configures the sensor fusion pipeline: the RMS power window,
// the multiplexed temperature ADC, the infrared sensor and the duty-cycle
// encoded module temperature input.
type FusionConfig struct {
	// Exponential smoothing factor applied to all fused measurements.
	SmoothingFactor float64 `json:"smoothingFactor"`

	// === voltage/current pair sampling
	PairsPerWindow          int     `json:"pairsPerWindow"`
	AdcRefV                 float64 `json:"adcRefV"`
	VdcGain                 float64 `json:"vdcGain"`
	CurrentCenterV          float64 `json:"currentCenterV"`
	CurrentSensitivityAPerV float64 `json:"currentSensitivityAPerV"`
	MaxVoltageV             float64 `json:"maxVoltageV"`
	MaxCurrentA             float64 `json:"maxCurrentA"`
	MaxPowerKw              float64 `json:"maxPowerKw"`

	// === multiplexed 8-channel temperature ADC
	MuxPollingRate  time.Duration    `json:"muxPollingRate"`
	MuxFullScaleV   float64          `json:"muxFullScaleV"`
	CoilTempChannel int              `json:"coilTempChannel"`
	PcbTempChannel  int              `json:"pcbTempChannel"`
	CoilNtc         NtcDividerConfig `json:"coilNtc"`
	PcbSensor       PcbSensorConfig  `json:"pcbSensor"`

	// === infrared object temperature
	IrPollingRate time.Duration `json:"irPollingRate"`

	// === duty-cycle encoded module temperature
	ModulePollingRate time.Duration      `json:"modulePollingRate"`
	Module            ModuleSensorConfig `json:"module"`
}

// NtcDividerConfig models an NTC thermistor in a pull-up divider.
type NtcDividerConfig struct {
	SeriesResistance float64 `json:"seriesResistance"`
	Beta             float64 `json:"beta"`
	R0               float64 `json:"r0"`
	T0C              float64 `json:"t0C"`
}

// PcbSensorConfig models a linear analog temperature sensor.
type PcbSensorConfig struct {
	OffsetV        float64 `json:"offsetV"`
	VoltsPerDegree float64 `json:"voltsPerDegree"`
	MinTempC       float64 `json:"minTempC"`
	MaxTempC       float64 `json:"maxTempC"`
}

// ModuleSensorConfig models the temperature-to-duty IC on the power module.
// The duty cycle maps linearly onto a sense voltage through two calibration
// points; the voltage maps onto an NTC resistance through a current source.
type ModuleSensorConfig struct {
	DutySamples int     `json:"dutySamples"`
	MinDuty     float64 `json:"minDuty"`
	MaxDuty     float64 `json:"maxDuty"`
	LowDuty     float64 `json:"lowDuty"`
	LowDutyV    float64 `json:"lowDutyV"`
	HighDuty    float64 `json:"highDuty"`
	HighDutyV   float64 `json:"highDutyV"`

	SourceCurrentA   float64 `json:"sourceCurrentA"`
	SeriesResistance float64 `json:"seriesResistance"`

	Beta float64 `json:"beta"`
	R0   float64 `json:"r0"`
	T0C  float64 `json:"t0C"`
}
