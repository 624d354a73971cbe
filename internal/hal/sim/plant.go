// Package sim provides a software bench plant implementing every collaborator
// contract of the controller core, so the full daemon can run and be exercised
// without the induction hardware attached.
package sim

import (
	"math"
	"sync"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/hal"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
)

const (
	busVoltageV     = 560.0
	ambientTempC    = 22.0
	dutyCarrierHz   = 1000.0
	thermalRiseK    = 90.0 // object temperature rise per kW at equilibrium
	thermalTauS     = 8.0
	coilCouplingK   = 3.0
	moduleCouplingK = 0.9
	pcbCouplingK    = 0.4
)

// Plant is a first-order thermal model of the shrink-fit machine driven by
// the commanded power stage. All accessors are safe for concurrent use.
type Plant struct {
	mu sync.Mutex

	control configuration.ControlConfig
	fusion  configuration.FusionConfig

	// commanded by the control loop
	pwmEnabled  bool
	frequencyHz float64
	solenoidOn  bool
	hsEnabled   bool
	lsEnabled   bool

	// plant state
	powerKw     float64
	objectTempC float64
	coilTempC   float64
	moduleTempC float64
	pcbTempC    float64
	lastStep    time.Time

	// operator/bench inputs, all active-low on the real wiring
	interlockClosed bool
	gateFaulted     bool
	gateReady       bool
	runPressed      bool
}

func NewPlant(control configuration.ControlConfig, fusion configuration.FusionConfig) *Plant {
	return &Plant{
		control:         control,
		fusion:          fusion,
		objectTempC:     ambientTempC,
		coilTempC:       ambientTempC,
		moduleTempC:     ambientTempC,
		pcbTempC:        ambientTempC,
		lastStep:        time.Now(),
		interlockClosed: true,
		gateReady:       true,
	}
}

// step advances the plant model by the wall time elapsed since the last call.
// Callers must hold p.mu.
func (p *Plant) step() {
	now := time.Now()
	dt := now.Sub(p.lastStep).Seconds()
	p.lastStep = now
	if dt <= 0 {
		return
	}

	// delivered power tracks the switching frequency: closer to the upper
	// end of the band couples more energy into the coil
	target := 0.0
	if p.pwmEnabled && p.hsEnabled && p.lsEnabled {
		ratio := util.Ratio(p.frequencyHz, p.control.MinFrequencyHz, p.control.MaxFrequencyHz)
		target = util.Coerce(ratio, 0, 1) * p.fusion.MaxPowerKw
	}
	p.powerKw += (target - p.powerKw) * math.Min(dt/0.05, 1)

	cooling := 1.0
	if p.solenoidOn {
		cooling = 4.0
	}

	relax := func(current, equilibrium float64) float64 {
		return current + (equilibrium-current)*math.Min(dt*cooling/thermalTauS, 1)
	}
	p.objectTempC = relax(p.objectTempC, ambientTempC+p.powerKw*thermalRiseK)
	p.coilTempC = relax(p.coilTempC, ambientTempC+p.powerKw*coilCouplingK)
	p.moduleTempC = relax(p.moduleTempC, ambientTempC+p.powerKw*moduleCouplingK)
	p.pcbTempC = relax(p.pcbTempC, ambientTempC+p.powerKw*pcbCouplingK)
}

// === hal.PairSampler

func (p *Plant) ReadPairs(buf []hal.SamplePair) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()

	voltage := 0.0
	current := 0.0
	if p.pwmEnabled {
		voltage = busVoltageV
		current = p.powerKw * 1000.0 / busVoltageV
	}

	vCode := p.voltageToCode(voltage * p.fusion.VdcGain)
	iCode := p.voltageToCode(p.fusion.CurrentCenterV + current/p.fusion.CurrentSensitivityAPerV)
	for i := range buf {
		buf[i] = hal.SamplePair{Voltage: vCode, Current: iCode}
	}
	return len(buf), nil
}

func (p *Plant) voltageToCode(v float64) uint16 {
	code := v / p.fusion.AdcRefV * 4095.0
	return uint16(util.Coerce(code, 0, 4095))
}

// === hal.MuxADC

func (p *Plant) ReadAllChannels() ([8]uint16, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()

	var channels [8]uint16
	channels[p.fusion.CoilTempChannel] = p.muxCode(p.coilSenseVoltage())
	channels[p.fusion.PcbTempChannel] = p.muxCode(
		p.fusion.PcbSensor.OffsetV + p.pcbTempC*p.fusion.PcbSensor.VoltsPerDegree)
	return channels, nil
}

// coilSenseVoltage inverts the pull-up NTC divider model for the current
// coil temperature.
func (p *Plant) coilSenseVoltage() float64 {
	ntc := p.fusion.CoilNtc
	t0K := ntc.T0C + 273.15
	tK := p.coilTempC + 273.15
	resistance := ntc.R0 * math.Exp(ntc.Beta*(1.0/tK-1.0/t0K))
	return p.fusion.MuxFullScaleV * resistance / (ntc.SeriesResistance + resistance)
}

func (p *Plant) muxCode(v float64) uint16 {
	code := v / p.fusion.MuxFullScaleV * 4095.0
	return uint16(util.Coerce(code, 0, 4095))
}

// === hal.InfraredSensor

func (p *Plant) ReadObjectTemperature() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()
	return p.objectTempC, nil
}

// === hal.DutyCapture

func (p *Plant) ReadCycle() (float64, float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()

	module := p.fusion.Module
	t0K := module.T0C + 273.15
	tK := p.moduleTempC + 273.15
	resistance := module.R0 * math.Exp(module.Beta*(1.0/tK-1.0/t0K))
	voltage := resistance*module.SourceCurrentA + module.SeriesResistance*module.SourceCurrentA

	slope := (module.HighDutyV - module.LowDutyV) / (module.HighDuty - module.LowDuty)
	duty := module.LowDuty + (voltage-module.LowDutyV)/slope
	duty = util.Coerce(duty, module.MinDuty, module.MaxDuty)

	period := 1.0 / dutyCarrierHz
	return duty * period, period, nil
}

// === hal.PowerStage

func (p *Plant) Configure(deadtimeNs int, frequencyHz float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frequencyHz = frequencyHz
}

func (p *Plant) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pwmEnabled = true
}

func (p *Plant) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pwmEnabled = false
}

func (p *Plant) SetEnableLines(highSide bool, lowSide bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hsEnabled = highSide
	p.lsEnabled = lowSide
}

func (p *Plant) SetSolenoid(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.solenoidOn = on
}

// === digital inputs, active-low

type levelInput struct {
	plant *Plant
	low   func(p *Plant) bool
}

func (l levelInput) IsLow() bool {
	l.plant.mu.Lock()
	defer l.plant.mu.Unlock()
	return l.low(l.plant)
}

func (p *Plant) Interlock() hal.DigitalInput {
	return levelInput{p, func(p *Plant) bool { return !p.interlockClosed }}
}

func (p *Plant) GateFault() hal.DigitalInput {
	return levelInput{p, func(p *Plant) bool { return p.gateFaulted }}
}

func (p *Plant) GateReady() hal.DigitalInput {
	return levelInput{p, func(p *Plant) bool { return !p.gateReady }}
}

func (p *Plant) RunButton() hal.DigitalInput {
	return levelInput{p, func(p *Plant) bool { return p.runPressed }}
}

// === bench controls

func (p *Plant) SetInterlockClosed(closed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interlockClosed = closed
}

func (p *Plant) SetGateFaulted(faulted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gateFaulted = faulted
}

func (p *Plant) SetGateReady(ready bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gateReady = ready
}

func (p *Plant) SetRunPressed(pressed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runPressed = pressed
}
