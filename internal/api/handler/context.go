package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// confirmed reads the confirm query flag that stands in for an interactive
// prompt on the HTTP surface.
func confirmed(c echo.Context) bool {
	ok, _ := strconv.ParseBool(c.QueryParam("confirm"))
	return ok
}
