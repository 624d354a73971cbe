package configuration

import "time"

// ControlConfig configures the operating-mode state machine and the two
// cascaded PI controllers.
type ControlConfig struct {
	// Time interval between each control loop tick.
	TickRate time.Duration `json:"tickRate"`

	DeadtimeNs      int     `json:"deadtimeNs"`
	BaseFrequencyHz float64 `json:"baseFrequencyHz"`
	MinFrequencyHz  float64 `json:"minFrequencyHz"`
	MaxFrequencyHz  float64 `json:"maxFrequencyHz"`

	// Minimum time between two accepted run button toggles.
	RunDebounce time.Duration `json:"runDebounce"`

	// Acceptance band below the temperature setpoint.
	TargetToleranceC float64 `json:"targetToleranceC"`

	PowerKp              float64 `json:"powerKp"`
	PowerKi              float64 `json:"powerKi"`
	PowerIntegratorLimit float64 `json:"powerIntegratorLimit"`

	TempKp          float64 `json:"tempKp"`
	TempKi          float64 `json:"tempKi"`
	TempErrorFloorC float64 `json:"tempErrorFloorC"`
}
