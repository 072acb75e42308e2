package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AanchalGupta0502/SocialeX/validators"
	"github.com/labstack/echo/v4"
)

const testUserHeader = "X-Test-User"

// asHeaderUser stands in for the JWT middleware: the caller id is taken from
// a test header.
func asHeaderUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(UserIDKey, c.Request().Header.Get(testUserHeader))
		return next(c)
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func serve(t *testing.T, e *echo.Echo, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(testUserHeader, userID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
