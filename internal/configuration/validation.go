package configuration

import (
	"errors"
	"fmt"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if err := validateLimits(&config.Limits); err != nil {
		return err
	}
	if err := validateControl(&config.Control); err != nil {
		return err
	}
	if err := validateFusion(&config.Fusion); err != nil {
		return err
	}
	return validateSafety(&config.Safety)
}

func validateLimits(limits *LimitsConfig) error {
	if limits.PowerKw <= 0 {
		return errors.New("Limits: power limit must be > 0")
	}
	if limits.CurrentA <= 0 {
		return errors.New("Limits: current limit must be > 0")
	}
	if limits.CoilTempC <= 0 || limits.ModuleTempC <= 0 || limits.PcbTempC <= 0 {
		return errors.New("Limits: temperature limits must be > 0")
	}
	return nil
}

func validateControl(control *ControlConfig) error {
	if control.TickRate <= 0 {
		return errors.New("Control: tick rate must be > 0")
	}
	if control.MinFrequencyHz >= control.MaxFrequencyHz {
		return fmt.Errorf("Control: invalid frequency range %.0f..%.0f Hz",
			control.MinFrequencyHz, control.MaxFrequencyHz)
	}
	if control.BaseFrequencyHz < control.MinFrequencyHz || control.BaseFrequencyHz > control.MaxFrequencyHz {
		return fmt.Errorf("Control: base frequency %.0f Hz outside range %.0f..%.0f Hz",
			control.BaseFrequencyHz, control.MinFrequencyHz, control.MaxFrequencyHz)
	}
	if control.DeadtimeNs <= 0 {
		return errors.New("Control: deadtime must be > 0")
	}
	if control.PowerIntegratorLimit <= 0 {
		return errors.New("Control: power integrator limit must be > 0")
	}
	return nil
}

func validateFusion(fusion *FusionConfig) error {
	if fusion.SmoothingFactor <= 0 || fusion.SmoothingFactor > 1 {
		return fmt.Errorf("Fusion: smoothing factor %.2f outside (0..1]", fusion.SmoothingFactor)
	}
	if fusion.PairsPerWindow <= 0 {
		return errors.New("Fusion: pairs per window must be > 0")
	}
	if fusion.CoilTempChannel < 0 || fusion.CoilTempChannel > 7 {
		return fmt.Errorf("Fusion: coil temp channel %d outside 0..7", fusion.CoilTempChannel)
	}
	if fusion.PcbTempChannel < 0 || fusion.PcbTempChannel > 7 {
		return fmt.Errorf("Fusion: pcb temp channel %d outside 0..7", fusion.PcbTempChannel)
	}
	if fusion.CoilTempChannel == fusion.PcbTempChannel {
		return errors.New("Fusion: coil and pcb temp sensors cannot share a channel")
	}

	module := fusion.Module
	if module.DutySamples <= 0 {
		return errors.New("Fusion: module duty samples must be > 0")
	}
	if module.MinDuty >= module.MaxDuty {
		return fmt.Errorf("Fusion: invalid module duty clamp %.2f..%.2f", module.MinDuty, module.MaxDuty)
	}
	if module.LowDuty == module.HighDuty {
		return errors.New("Fusion: module duty calibration points must differ")
	}
	if module.SourceCurrentA <= 0 {
		return errors.New("Fusion: module sense current must be > 0")
	}
	return nil
}

func validateSafety(safety *SafetyConfig) error {
	if safety.PollingRate <= 0 {
		return errors.New("Safety: polling rate must be > 0")
	}
	if safety.PowerOvershootMargin < 1 {
		return fmt.Errorf("Safety: power overshoot margin %.2f must be >= 1", safety.PowerOvershootMargin)
	}
	return nil
}
