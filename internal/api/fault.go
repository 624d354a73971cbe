package api

import (
	"net/http"

	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/labstack/echo/v4"
)

type faultResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func registerFaultEndpoints(rest *echo.Echo, store *state.Store) {
	group := rest.Group("/fault")

	group.GET("/", func(c echo.Context) error {
		return getFault(c, store)
	})
	group.POST("/clear/", func(c echo.Context) error {
		return clearFault(c, store)
	})
}

func getFault(c echo.Context, store *state.Store) error {
	code := store.CurrentFault()
	return c.JSONPretty(http.StatusOK, &faultResponse{
		Code:    code.String(),
		Message: code.Message(),
	}, indentationChar)
}

// clearFault acknowledges the active fault. The safety monitor re-evaluates
// all conditions on its next poll and re-raises anything still present.
func clearFault(c echo.Context, store *state.Store) error {
	store.ClearFault()
	return getFault(c, store)
}
