package state

// Measurements is the fused sensor record. Written only by the sensor fusion
// monitors; read by the safety monitor, the control loop and the operator API.
type Measurements struct {
	DcVoltageV      float64 `json:"dcVoltageV"`
	CoilCurrentRmsA float64 `json:"coilCurrentRmsA"`
	CoilPowerKw     float64 `json:"coilPowerKw"`
	CoilTempC       float64 `json:"coilTempC"`
	PcbTempC        float64 `json:"pcbTempC"`
	ModuleTempC     float64 `json:"moduleTempC"`
	ObjectTempC     float64 `json:"objectTempC"`

	// Valid is set once the first RMS window has produced a result. Power and
	// current fault checks are suppressed until then.
	Valid bool `json:"valid"`

	// CoilTempDisconnected is raised when the coil sense voltage saturates
	// near a rail (open-circuit thermistor).
	CoilTempDisconnected bool `json:"coilTempDisconnected"`
}

// ControlSettings is the operator intent record. Written only by the operator
// surface (REST API); read by the control loop.
type ControlSettings struct {
	Mode          ControlMode `json:"mode"`
	ManualPowerKw float64     `json:"manualPowerKw"`
	TargetTempC   float64     `json:"targetTempC"`
}

func DefaultControlSettings() ControlSettings {
	return ControlSettings{
		Mode:          ModeManualPower,
		ManualPowerKw: 5.0,
		TargetTempC:   120.0,
	}
}

// ControlStatus is fully overwritten by the control loop on every tick, giving
// consumers a consistent single-tick snapshot.
type ControlStatus struct {
	Mode            ControlMode `json:"mode"`
	HeatingEnabled  bool        `json:"heatingEnabled"`
	RunActive       bool        `json:"runActive"`
	TargetReached   bool        `json:"targetReached"`
	CooldownActive  bool        `json:"cooldownActive"`
	PowerSetpointKw float64     `json:"powerSetpointKw"`
	SwitchingFreqHz float64     `json:"switchingFreqHz"`
	Fault           FaultCode   `json:"fault"`
}

// FaultState holds the single active fault code. Written by the safety
// monitor; the operator surface may clear it, after which the monitor
// re-evaluates on its next poll.
type FaultState struct {
	Code FaultCode `json:"code"`
}
