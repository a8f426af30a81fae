// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// ApplicationHandler handles job application submissions
type ApplicationHandler interface {
	HandleSubmitApplication(c echo.Context) error
}

// HealthHandler handles liveness and health check operations
type HealthHandler interface {
	HandleRoot(c echo.Context) error
	HandleHealth(c echo.Context) error
}
