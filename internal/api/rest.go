package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/persistence"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Registry is where the http metrics are registered and all metrics are gathered from
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// CreateRestService creates the read-only http interface of the controller.
// There are no endpoints which change controller state.
func CreateRestService(board *engine.Board, journal persistence.Persistence, registry Registry) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "bed2go",
		Subsystem:  "api",
		Registerer: registry,
	}))

	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/metrics/", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))

	registerStatusEndpoints(echoRest, board)
	if journal != nil {
		registerJournalEndpoints(echoRest, journal)
	}

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
