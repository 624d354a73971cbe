package api

import (
	"net/http"

	"github.com/LucasPMagno/induction-shrink-fit/internal/fusion"
	"github.com/labstack/echo/v4"
)

func registerMonitorEndpoints(rest *echo.Echo) {
	group := rest.Group("/monitor")

	group.GET("/", getMonitors)
}

func getMonitors(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, fusion.MonitorMap.Keys(), indentationChar)
}
