package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserva-admin/internal/utils"
)

func runProtected(t *testing.T, authHeader string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/eventos", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"

	t.Run("valid token passes and injects claims", func(t *testing.T) {
		at, err := utils.NewAccessToken(secret, 9, "STAFF", 5)
		require.NoError(t, err)
		rec := runProtected(t, "Bearer "+at.Token, JWTAuth(secret), RequireRole("ADMIN", "STAFF"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := runProtected(t, "", JWTAuth(secret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		at, err := utils.NewAccessToken("other-secret", 9, "STAFF", 5)
		require.NoError(t, err)
		rec := runProtected(t, "Bearer "+at.Token, JWTAuth(secret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("role outside the allowed set rejected", func(t *testing.T) {
		at, err := utils.NewAccessToken(secret, 9, "STAFF", 5)
		require.NoError(t, err)
		rec := runProtected(t, "Bearer "+at.Token, JWTAuth(secret), RequireRole("ADMIN"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
