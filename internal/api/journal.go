package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/bed2go/internal/persistence"
)

func registerJournalEndpoints(rest *echo.Echo, journal persistence.Persistence) {
	rest.GET("/journal/", func(c echo.Context) error {
		records, err := journal.LoadSafetyTrips()
		if err != nil {
			return returnError(c, err)
		}
		if records == nil {
			records = []persistence.TripRecord{}
		}
		return c.JSONPretty(http.StatusOK, records, indentationChar)
	})
}
