package state

import "fmt"

// ControlMode is the operating mode of the control loop. Exactly one mode is
// active at any time; a mode change resets all controller state.
type ControlMode int

const (
	ModeIdle ControlMode = iota
	ModeManualPower
	ModeTemperature
	ModeCooldown
)

func (m ControlMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeManualPower:
		return "manual_power"
	case ModeTemperature:
		return "temperature"
	case ModeCooldown:
		return "cooldown"
	}
	return fmt.Sprintf("ControlMode(%d)", int(m))
}

// ParseControlMode converts the external string representation back into a mode.
func ParseControlMode(value string) (ControlMode, error) {
	switch value {
	case "idle":
		return ModeIdle, nil
	case "manual_power":
		return ModeManualPower, nil
	case "temperature":
		return ModeTemperature, nil
	case "cooldown":
		return ModeCooldown, nil
	}
	return ModeIdle, fmt.Errorf("unknown control mode: %s", value)
}

// IsHeating indicates whether the run latch may arm heating in this mode.
func (m ControlMode) IsHeating() bool {
	return m == ModeManualPower || m == ModeTemperature
}
