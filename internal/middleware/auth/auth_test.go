package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/pkg/tokens"
)

var secret = []byte("test-secret")

func newEcho(cfg Config) *echo.Echo {
	e := echo.New()
	g := e.Group("/users", Middlewares(cfg)...)
	g.GET("", func(c echo.Context) error { return c.String(http.StatusOK, Actor(c)) })
	return e
}

func do(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sign(t *testing.T, name, role string, exp time.Time) string {
	t.Helper()
	tok, err := tokens.SignAccessToken(1, name, role, exp, secret)
	require.NoError(t, err)
	return tok
}

func TestRequired(t *testing.T) {
	e := newEcho(Config{Secret: secret, Required: true})

	assert.Equal(t, http.StatusUnauthorized, do(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, sign(t, "root", "admin", time.Now().Add(-time.Minute))).Code)
	assert.Equal(t, http.StatusForbidden, do(e, sign(t, "bob", "customer", time.Now().Add(time.Hour))).Code)

	rec := do(e, sign(t, "root", "admin", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root", rec.Body.String())
}

func TestOptional(t *testing.T) {
	e := newEcho(Config{Secret: secret, Required: false})

	rec := do(e, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AnonymousActor, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(e, "garbage").Code)

	rec = do(e, sign(t, "root", "admin", time.Now().Add(time.Hour)))
	assert.Equal(t, "root", rec.Body.String())
}
