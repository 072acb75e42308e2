package config

import (
	"context"
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
)

// CorsPolicy builds the single origin policy shared by REST routes and the
// WebSocket upgrade check.
func CorsPolicy(cfg *Config) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}

func SetupMiddleware(e *echo.Echo, logger logging.Logger, policy *cors.Cors) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.Error(context.Background(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info(context.Background(), "request", attrs...)
			return nil
		},
	}))
	e.Use(echo.WrapMiddleware(policy.Handler))
	logger.Debug(context.Background(), "global middleware configured")
}

// WebSocketOriginCheck applies the CORS origin list to upgrade requests.
// Requests without an Origin header come from non-browser clients and are
// allowed.
func WebSocketOriginCheck(policy *cors.Cors) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if r.Header.Get("Origin") == "" {
			return true
		}
		return policy.OriginAllowed(r)
	}
}
