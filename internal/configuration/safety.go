package configuration

import "time"

// SafetyConfig configures the fault monitor poll rate and the early-warning
// watchdog logging.
type SafetyConfig struct {
	PollingRate time.Duration `json:"pollingRate"`

	// Power may overshoot its limit by this factor before a fault is raised.
	PowerOvershootMargin float64 `json:"powerOvershootMargin"`

	WarningInterval    time.Duration `json:"warningInterval"`
	TempWarningMarginC float64       `json:"tempWarningMarginC"`
	PowerWarningRatio  float64       `json:"powerWarningRatio"`
}
