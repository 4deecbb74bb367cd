package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/qdm12/reprint"
)

func registerStatusEndpoints(rest *echo.Echo, board *engine.Board) {
	group := rest.Group("/status")

	group.GET("/", func(c echo.Context) error {
		data := reprint.This(board.Snapshot())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	group.GET("/channel/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)
		channelId, err := strconv.Atoi(id)
		if err != nil {
			return returnNotFound(c, id)
		}
		data, exists := board.Channel(channelId)
		if !exists {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	group.GET("/section/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)
		sectionId, err := strconv.Atoi(id)
		if err != nil {
			return returnNotFound(c, id)
		}
		data, exists := board.Section(sectionId)
		if !exists {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
	})
}
