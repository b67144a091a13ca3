package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/luxury-estate-api/internal/utils"
)

func TestJWTAuthAndRole(t *testing.T) {
	const secret = "s"
	e := echo.New()
	e.GET("/api/leads", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ctxUserID).(string))
	}, JWTAuth(secret), RequireRole(utils.RoleAdmin))

	call := func(auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
		if auth != "" {
			req.Header.Set(echo.HeaderAuthorization, auth)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer abc.def.ghi").Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other", "admin", utils.RoleAdmin, 5)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+tok.Token).Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, "someone", "VIEWER", 5)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, call("Bearer "+tok.Token).Code)
	})

	t.Run("admin token", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, "admin", utils.RoleAdmin, 5)
		require.NoError(t, err)
		rec := call("Bearer " + tok.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin", rec.Body.String())
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, "admin", utils.RoleAdmin, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+tok.Token).Code)
	})
}
