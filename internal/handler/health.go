package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RootMessage is returned by the landing route.
const RootMessage = "Luxury Real Estate Backend Running"

// Health is a simple health‑check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It returns
// a plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Root answers GET / with a short banner so the site can tell the backend is up.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": RootMessage})
}
