package safety

import (
	"testing"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/stretchr/testify/assert"
)

type fakeInput struct {
	low bool
}

func (i *fakeInput) IsLow() bool {
	return i.low
}

func testLimits() configuration.LimitsConfig {
	return configuration.LimitsConfig{
		PowerKw:     10.0,
		CurrentA:    150.0,
		CoilTempC:   80.0,
		ModuleTempC: 35.0,
		PcbTempC:    85.0,
	}
}

func testSafetyConfig() configuration.SafetyConfig {
	return configuration.SafetyConfig{
		PollingRate:          25 * time.Millisecond,
		PowerOvershootMargin: 1.05,
		WarningInterval:      2 * time.Second,
		TempWarningMarginC:   5.0,
		PowerWarningRatio:    0.9,
	}
}

type harness struct {
	store     *state.Store
	interlock *fakeInput
	gateFault *fakeInput
	gateReady *fakeInput
	monitor   *Monitor
}

func newHarness() *harness {
	store := state.NewStore()
	interlock := &fakeInput{}
	gateFault := &fakeInput{}
	gateReady := &fakeInput{}
	monitor := NewMonitor(store, Inputs{
		Interlock: interlock,
		GateFault: gateFault,
		GateReady: gateReady,
	}, testLimits(), testSafetyConfig())
	return &harness{
		store:     store,
		interlock: interlock,
		gateFault: gateFault,
		gateReady: gateReady,
		monitor:   monitor,
	}
}

func (h *harness) poll() {
	h.monitor.poll(time.Now())
}

func TestNoFaultOnHealthyMachine(t *testing.T) {
	// GIVEN
	h := newHarness()

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultNone, h.store.CurrentFault())
}

func TestInterlockOpenRaisesFault(t *testing.T) {
	// GIVEN
	h := newHarness()
	h.interlock.low = true

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultInterlockOpen, h.store.CurrentFault())
}

func TestInterlockBeatsThermalFault(t *testing.T) {
	// GIVEN an open interlock and an overheated coil at the same time
	h := newHarness()
	h.interlock.low = true
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.CoilTempC = 95.0
	})

	// WHEN
	h.poll()

	// THEN the digital safety signal wins
	assert.Equal(t, state.FaultInterlockOpen, h.store.CurrentFault())
}

func TestGateFaultBeatsGateNotReady(t *testing.T) {
	// GIVEN
	h := newHarness()
	h.gateFault.low = true
	h.gateReady.low = true

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultGateDriverFault, h.store.CurrentFault())
}

func TestSensorFaultBeatsThermalFault(t *testing.T) {
	// GIVEN a disconnected coil thermistor; its last smoothed reading is stale
	h := newHarness()
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.CoilTempDisconnected = true
		m.CoilTempC = 95.0
	})

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultSensorFault, h.store.CurrentFault())
}

func TestThermalFaultsDoNotWaitForValid(t *testing.T) {
	// GIVEN an overheated module before the first RMS window completed
	h := newHarness()
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.ModuleTempC = 40.0
		m.Valid = false
	})

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultModuleOverTemp, h.store.CurrentFault())
}

func TestPowerLimitRequiresValidMeasurement(t *testing.T) {
	// GIVEN power above limit but no completed RMS window yet
	h := newHarness()
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.CoilPowerKw = 12.0
		m.Valid = false
	})

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultNone, h.store.CurrentFault())

	// WHEN the window completes
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.Valid = true
	})
	h.poll()

	// THEN
	assert.Equal(t, state.FaultPowerLimit, h.store.CurrentFault())
}

func TestPowerLimitAllowsOvershootMargin(t *testing.T) {
	// GIVEN power within the 5% overshoot margin
	h := newHarness()
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.CoilPowerKw = 10.4
		m.Valid = true
	})

	// WHEN
	h.poll()

	// THEN 10.4 <= 10 * 1.05
	assert.Equal(t, state.FaultNone, h.store.CurrentFault())
}

func TestCurrentLimitRequiresValidMeasurement(t *testing.T) {
	// GIVEN
	h := newHarness()
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.CoilCurrentRmsA = 200.0
		m.Valid = false
	})

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultNone, h.store.CurrentFault())

	// WHEN
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.Valid = true
	})
	h.poll()

	// THEN
	assert.Equal(t, state.FaultCurrentLimit, h.store.CurrentFault())
}

func TestCoilOverTempBeatsPowerLimit(t *testing.T) {
	// GIVEN
	h := newHarness()
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.CoilTempC = 95.0
		m.CoilPowerKw = 12.0
		m.Valid = true
	})

	// WHEN
	h.poll()

	// THEN
	assert.Equal(t, state.FaultCoilOverTemp, h.store.CurrentFault())
}

func TestFaultClearsWhenConditionResolves(t *testing.T) {
	// GIVEN an open interlock fault
	h := newHarness()
	h.interlock.low = true
	h.poll()
	assert.Equal(t, state.FaultInterlockOpen, h.store.CurrentFault())

	// WHEN the interlock closes again
	h.interlock.low = false
	h.poll()

	// THEN
	assert.Equal(t, state.FaultNone, h.store.CurrentFault())
}

func TestOperatorClearIsRevalidated(t *testing.T) {
	// GIVEN a persisting fault that the operator acknowledges
	h := newHarness()
	h.gateFault.low = true
	h.poll()
	h.store.ClearFault()
	assert.Equal(t, state.FaultNone, h.store.CurrentFault())

	// WHEN the monitor polls again
	h.poll()

	// THEN the fault comes right back
	assert.Equal(t, state.FaultGateDriverFault, h.store.CurrentFault())
}

func TestFaultEscalation(t *testing.T) {
	// GIVEN a pcb over-temp fault
	h := newHarness()
	h.store.Measurements.Update(func(m *state.Measurements) {
		m.PcbTempC = 90.0
	})
	h.poll()
	assert.Equal(t, state.FaultPcbOverTemp, h.store.CurrentFault())

	// WHEN a higher priority condition appears
	h.interlock.low = true
	h.poll()

	// THEN
	assert.Equal(t, state.FaultInterlockOpen, h.store.CurrentFault())
}
