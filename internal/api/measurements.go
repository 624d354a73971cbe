package api

import (
	"net/http"

	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerMeasurementsEndpoints(rest *echo.Echo, store *state.Store) {
	group := rest.Group("/measurements")

	group.GET("/", func(c echo.Context) error {
		return getMeasurements(c, store)
	})
}

func registerStatusEndpoints(rest *echo.Echo, store *state.Store) {
	group := rest.Group("/status")

	group.GET("/", func(c echo.Context) error {
		return getStatus(c, store)
	})
}

func getMeasurements(c echo.Context, store *state.Store) error {
	data := reprint.This(store.Measurements.Snapshot())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getStatus(c echo.Context, store *state.Store) error {
	data := reprint.This(store.Status.Snapshot())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
