package state

import "fmt"

// FaultCode enumerates the safety faults of the power stage. Exactly one code
// is active at a time; the safety monitor picks the highest priority match.
type FaultCode int

const (
	FaultNone FaultCode = iota
	FaultPowerLimit
	FaultCoilOverTemp
	FaultModuleOverTemp
	FaultPcbOverTemp
	FaultInterlockOpen
	FaultGateDriverFault
	FaultGateDriverNotReady
	FaultSensorFault
	FaultCurrentLimit
)

func (c FaultCode) String() string {
	switch c {
	case FaultNone:
		return "none"
	case FaultPowerLimit:
		return "power_limit"
	case FaultCoilOverTemp:
		return "coil_over_temp"
	case FaultModuleOverTemp:
		return "module_over_temp"
	case FaultPcbOverTemp:
		return "pcb_over_temp"
	case FaultInterlockOpen:
		return "interlock_open"
	case FaultGateDriverFault:
		return "gate_driver_fault"
	case FaultGateDriverNotReady:
		return "gate_driver_not_ready"
	case FaultSensorFault:
		return "sensor_fault"
	case FaultCurrentLimit:
		return "current_limit"
	}
	return fmt.Sprintf("FaultCode(%d)", int(c))
}

// Message returns the operator-facing description of the fault.
func (c FaultCode) Message() string {
	switch c {
	case FaultNone:
		return "OK"
	case FaultPowerLimit:
		return "Power limit exceeded"
	case FaultCoilOverTemp:
		return "Coil over-temp"
	case FaultModuleOverTemp:
		return "SiC module over-temp"
	case FaultPcbOverTemp:
		return "PCB over-temp"
	case FaultInterlockOpen:
		return "Interlock open"
	case FaultGateDriverFault:
		return "Gate driver fault"
	case FaultGateDriverNotReady:
		return "Gate driver not ready"
	case FaultSensorFault:
		return "Sensor fault"
	case FaultCurrentLimit:
		return "Current limit exceeded"
	}
	return "Unknown fault"
}
