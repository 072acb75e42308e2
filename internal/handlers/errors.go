package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error onto an HTTP status. Storage failures are
// not echoed to the client.
func httpError(err error, notFound string) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorDuplicate):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorInvalidCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, common.ErrorInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}

// currentUserID returns the id stored by the JWT middleware.
func currentUserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

// UserIDKey is the echo.Context key holding the authenticated user id.
const UserIDKey = "userID"

// pagination reads skip and limit query parameters, capping limit at 100.
func pagination(c echo.Context, defaultLimit int64) (skip, limit int64) {
	skip, _ = strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
