// Package hal declares the collaborator contracts the controller core
// consumes. The register-level drivers behind these interfaces (I2C mux ADC,
// infrared thermometer, PWM peripheral) live outside the core; only their
// numeric contracts matter here.
package hal

// SamplePair is one simultaneous raw reading of the DC bus voltage channel
// and the coil current channel, as 12-bit ADC codes.
type SamplePair struct {
	Voltage uint16
	Current uint16
}

// PairSampler delivers voltage/current sample pairs at a fixed high rate.
type PairSampler interface {
	// ReadPairs fills buf with consecutive sample pairs and returns the
	// number of pairs read.
	ReadPairs(buf []SamplePair) (int, error)
}

// MuxADC is an 8-channel multiplexed ADC returning 12-bit codes. The
// channel-to-signal mapping is fixed by board wiring.
type MuxADC interface {
	ReadAllChannels() ([8]uint16, error)
}

// InfraredSensor reads the workpiece object temperature, already converted
// to degrees Celsius by the driver.
type InfraredSensor interface {
	ReadObjectTemperature() (float64, error)
}

// DutyCapture measures one cycle of the temperature-to-duty signal and
// returns the high time and the period, both in seconds.
type DutyCapture interface {
	ReadCycle() (high float64, period float64, err error)
}

// PowerStage drives the induction power stage: complementary PWM with
// deadtime, the high/low side gate enables and the coolant solenoid.
// Calls are treated as infallible at the control layer.
type PowerStage interface {
	Configure(deadtimeNs int, frequencyHz float64)
	Enable()
	Disable()
	SetEnableLines(highSide bool, lowSide bool)
	SetSolenoid(on bool)
}

// DigitalInput is a simple level read. The interlock, gate-driver fault and
// gate-driver ready signals are active-low; so is the run button.
type DigitalInput interface {
	IsLow() bool
}
