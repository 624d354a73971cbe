package persistence

import (
	"path/filepath"
	"testing"

	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/stretchr/testify/assert"
)

func testPersistence(t *testing.T) Persistence {
	return NewPersistence(filepath.Join(t.TempDir(), "test.db"))
}

func TestPersistence_SaveControlSettings(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	settings := state.ControlSettings{
		Mode:          state.ModeTemperature,
		ManualPowerKw: 7.5,
		TargetTempC:   200.0,
	}

	// WHEN
	err := p.SaveControlSettings(settings)

	// THEN
	assert.NoError(t, err)
}

func TestPersistence_LoadControlSettings(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	expected := state.ControlSettings{
		Mode:          state.ModeTemperature,
		ManualPowerKw: 7.5,
		TargetTempC:   200.0,
	}
	err := p.SaveControlSettings(expected)
	assert.NoError(t, err)

	// WHEN
	loaded, err := p.LoadControlSettings()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, expected, loaded)
}

func TestPersistence_LoadControlSettings_EmptyDb(t *testing.T) {
	// GIVEN a fresh database with nothing saved
	p := testPersistence(t)

	// WHEN
	loaded, err := p.LoadControlSettings()

	// THEN the defaults come back
	assert.Error(t, err)
	assert.Equal(t, state.DefaultControlSettings(), loaded)
}

func TestPersistence_Init(t *testing.T) {
	// GIVEN a db path in a directory that does not exist yet
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	p := NewPersistence(filepath.Join(dir, "test.db"))

	// WHEN
	err := p.Init()

	// THEN
	assert.NoError(t, err)
}
