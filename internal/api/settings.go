package api

import (
	"net/http"

	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/persistence"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/LucasPMagno/induction-shrink-fit/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

// settingsRequest mirrors ControlSettings with the mode as its string form.
type settingsRequest struct {
	Mode          string  `json:"mode"`
	ManualPowerKw float64 `json:"manualPowerKw"`
	TargetTempC   float64 `json:"targetTempC"`
}

func registerSettingsEndpoints(rest *echo.Echo, store *state.Store, pers persistence.Persistence) {
	group := rest.Group("/settings")

	group.GET("/", func(c echo.Context) error {
		return getSettings(c, store)
	})
	group.PUT("/", func(c echo.Context) error {
		return putSettings(c, store, pers)
	})
}

func getSettings(c echo.Context, store *state.Store) error {
	data := reprint.This(store.Settings.Snapshot())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func putSettings(c echo.Context, store *state.Store, pers persistence.Persistence) error {
	var request settingsRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err.Error())
	}

	mode, err := state.ParseControlMode(request.Mode)
	if err != nil {
		return returnBadRequest(c, err.Error())
	}

	limits := configuration.CurrentConfig.Limits
	settings := state.ControlSettings{
		Mode:          mode,
		ManualPowerKw: util.Coerce(request.ManualPowerKw, 0, limits.PowerKw),
		TargetTempC:   util.Coerce(request.TargetTempC, 0, maxTargetTempC),
	}

	store.Settings.Replace(settings)
	ui.Info("Settings updated: mode=%s manualPower=%.1fkW target=%.1f°C",
		settings.Mode, settings.ManualPowerKw, settings.TargetTempC)

	if err := pers.SaveControlSettings(settings); err != nil {
		ui.Warning("Unable to persist settings: %v", err)
	}

	return getSettings(c, store)
}

// maxTargetTempC bounds the operator target well below anything the coil
// thermistor protection would allow the machine to sustain.
const maxTargetTempC = 400.0
