package fusion

import (
	"testing"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func coilNtc() PullupNtc {
	return PullupNtc{
		Config: configuration.NtcDividerConfig{
			SeriesResistance: 10000.0,
			Beta:             3950.0,
			R0:               10000.0,
			T0C:              25.0,
		},
		FullScaleV: 5.0,
	}
}

func TestNtcBetaTempAtReferencePoint(t *testing.T) {
	// GIVEN R == R0

	// WHEN
	temp := NtcBetaTemp(10000.0, 3950.0, 10000.0, 25.0)

	// THEN
	assert.InDelta(t, 25.0, temp, 0.001)
}

func TestNtcBetaTempMonotonicallyDecreasing(t *testing.T) {
	// GIVEN an NTC, resistance falls as temperature rises
	cold := NtcBetaTemp(30000.0, 3950.0, 10000.0, 25.0)
	ref := NtcBetaTemp(10000.0, 3950.0, 10000.0, 25.0)
	hot := NtcBetaTemp(1000.0, 3950.0, 10000.0, 25.0)

	// THEN
	assert.Less(t, cold, ref)
	assert.Less(t, ref, hot)
}

func TestNtcBetaTempShortedSensor(t *testing.T) {
	// WHEN
	temp := NtcBetaTemp(0.0, 3950.0, 10000.0, 25.0)

	// THEN
	assert.Equal(t, 0.0, temp)
}

func TestPullupNtcMidpointIsReferenceTemp(t *testing.T) {
	// GIVEN a divider at exactly half scale, R equals the pull-up
	ntc := coilNtc()

	// WHEN
	temp, disconnected := ntc.Convert(2.5)

	// THEN
	assert.False(t, disconnected)
	assert.InDelta(t, 25.0, temp, 0.001)
}

func TestPullupNtcDisconnectedAtRails(t *testing.T) {
	// GIVEN
	ntc := coilNtc()

	// WHEN
	_, lowRail := ntc.Convert(0.005)
	_, highRail := ntc.Convert(4.995)
	_, normal := ntc.Convert(2.0)

	// THEN
	assert.True(t, lowRail)
	assert.True(t, highRail)
	assert.False(t, normal)
}

func TestLinearPcbTemp(t *testing.T) {
	// GIVEN a 10mV/°C sensor with a 500mV offset
	config := configuration.PcbSensorConfig{
		OffsetV:        0.5,
		VoltsPerDegree: 0.01,
		MinTempC:       -40.0,
		MaxTempC:       150.0,
	}

	// WHEN
	atOffset := LinearPcbTemp(0.5, config)
	at25 := LinearPcbTemp(0.75, config)
	belowRange := LinearPcbTemp(0.0, config)
	aboveRange := LinearPcbTemp(5.0, config)

	// THEN
	assert.Equal(t, 0.0, atOffset)
	assert.InDelta(t, 25.0, at25, 0.001)
	assert.Equal(t, -40.0, belowRange)
	assert.Equal(t, 150.0, aboveRange)
}

func TestCodeToVoltage(t *testing.T) {
	// WHEN
	zero := CodeToVoltage(0, 5.0)
	full := CodeToVoltage(4095, 5.0)

	// THEN
	assert.Equal(t, 0.0, zero)
	assert.Equal(t, 5.0, full)
}
