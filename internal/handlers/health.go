package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ConnectionCounter reports live WebSocket connections.
type ConnectionCounter interface {
	Count() int
}

// HealthCheck reports liveness and the number of open WebSocket connections.
func HealthCheck(conns ConnectionCounter) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":      "healthy",
			"service":     "socialex",
			"connections": conns.Count(),
		})
	}
}
