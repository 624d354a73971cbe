package control

import (
	"context"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/hal"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
)

// Controller runs the operating-mode state machine and the cascaded PI
// controllers, drives the power stage and publishes a full status snapshot
// every tick.
type Controller struct {
	store     *state.Store
	stage     hal.PowerStage
	runButton hal.DigitalInput
	config    configuration.ControlConfig
	limits    configuration.LimitsConfig

	powerCtrl *PowerController
	tempCtrl  *TemperatureController
	latch     *RunLatch

	pwmRunning bool
	lastMode   state.ControlMode
}

func NewController(
	store *state.Store,
	stage hal.PowerStage,
	runButton hal.DigitalInput,
	config configuration.ControlConfig,
	limits configuration.LimitsConfig,
) *Controller {
	return &Controller{
		store:     store,
		stage:     stage,
		runButton: runButton,
		config:    config,
		limits:    limits,
		powerCtrl: NewPowerController(config),
		tempCtrl:  NewTemperatureController(config, limits.PowerKw),
		latch:     NewRunLatch(config.RunDebounce),
		lastMode:  state.ModeIdle,
	}
}

func (c *Controller) Run(ctx context.Context) error {
	// safe initial outputs before the first tick
	c.stage.SetEnableLines(false, false)
	c.stage.SetSolenoid(false)
	c.stage.Disable()

	tick := time.Tick(c.config.TickRate)
	for {
		select {
		case <-ctx.Done():
			c.stage.Disable()
			c.stage.SetEnableLines(false, false)
			c.stage.SetSolenoid(false)
			return nil
		case <-tick:
			c.tick(time.Now())
		}
	}
}

// tick advances the state machine by one control period.
func (c *Controller) tick(now time.Time) {
	settings := c.store.Settings.Snapshot()
	mode := settings.Mode
	fault := c.store.CurrentFault()
	dt := c.config.TickRate.Seconds()

	// a mode change must not leak controller state into the new mode
	if mode != c.lastMode {
		c.powerCtrl.Reset(c.config.BaseFrequencyHz)
		c.tempCtrl.Reset()
		c.latch.Clear()
		c.pwmRunning = false
		c.stage.Disable()
		c.lastMode = mode
		ui.Debug("Control mode changed to %s", mode)
	}

	runActive := c.latch.Observe(c.runButton.IsLow(), now, mode.IsHeating())

	// faults pre-empt the run intent, independent of the button
	if fault != state.FaultNone || !mode.IsHeating() {
		if runActive {
			ui.Warning("Run cancelled due to fault or mode change")
		}
		c.latch.Clear()
		runActive = false
	}

	var powerSetpoint float64
	var switchingFreq float64
	heating := false
	targetReached := false

	switch mode {
	case state.ModeCooldown:
		c.stage.SetSolenoid(true)
		c.pwmRunning = false
		c.stage.Disable()
		c.stage.SetEnableLines(false, false)

	case state.ModeIdle:
		c.stage.SetSolenoid(false)
		c.pwmRunning = false
		c.stage.Disable()
		c.stage.SetEnableLines(false, false)

	case state.ModeManualPower, state.ModeTemperature:
		c.stage.SetSolenoid(false)

		meas := c.store.Measurements.Snapshot()
		heating = runActive && fault == state.FaultNone

		if mode == state.ModeManualPower {
			powerSetpoint = util.Coerce(settings.ManualPowerKw, 0, c.limits.PowerKw)
		} else {
			targetReached = meas.ObjectTempC >= settings.TargetTempC-c.config.TargetToleranceC
			powerSetpoint = c.tempCtrl.Update(settings.TargetTempC, meas.ObjectTempC, dt)
		}

		if heating {
			switchingFreq = c.powerCtrl.Update(powerSetpoint, meas.CoilPowerKw, dt)
			c.stage.Configure(c.config.DeadtimeNs, switchingFreq)
			c.stage.Enable()
			c.pwmRunning = true
			c.stage.SetEnableLines(true, true)
		} else {
			if c.pwmRunning {
				c.stage.Disable()
				c.pwmRunning = false
			}
			c.stage.SetEnableLines(false, false)
		}
		switchingFreq = c.powerCtrl.FrequencyHz()
	}

	c.store.Status.Replace(state.ControlStatus{
		Mode:            mode,
		HeatingEnabled:  heating && c.pwmRunning,
		RunActive:       c.latch.Active(),
		TargetReached:   targetReached,
		CooldownActive:  mode == state.ModeCooldown,
		PowerSetpointKw: powerSetpoint,
		SwitchingFreqHz: switchingFreq,
		Fault:           fault,
	})
}
