package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser map[string]string

func (f fakeParser) Authenticate(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func run(t *testing.T, header string) (*httptest.ResponseRecorder, string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := JWTAuthMiddleware(fakeParser{"good": "user-1"}, "userID")(func(c echo.Context) error {
		seen, _ = c.Get("userID").(string)
		return c.NoContent(http.StatusOK)
	})
	return rec, seen, h(c)
}

func TestJWTAuthMiddleware_Accepts(t *testing.T) {
	rec, seen, err := run(t, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", seen)
}

func TestJWTAuthMiddleware_Rejects(t *testing.T) {
	for name, header := range map[string]string{
		"missing":   "",
		"no scheme": "good",
		"basic":     "Basic good",
		"bad token": "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			_, seen, err := run(t, header)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnauthorized, he.Code)
			assert.Empty(t, seen)
		})
	}
}
