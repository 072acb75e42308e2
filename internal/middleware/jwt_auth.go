package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	Authenticate(token string) (string, error)
}

// JWTAuthMiddleware requires a valid "Bearer <token>" header and stores the
// user id in the context under key.
func JWTAuthMiddleware(parser TokenParser, key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			userID, err := parser.Authenticate(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(key, userID)
			return next(c)
		}
	}
}
