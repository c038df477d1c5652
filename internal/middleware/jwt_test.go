package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/letsplay/court-booking/internal/utils"
)

func runJWT(t *testing.T, secret, header string) (*httptest.ResponseRecorder, interface{}) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
    if header != "" {
        req.Header.Set("Authorization", header)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var captured interface{}
    h := JWTAuth(secret)(func(c echo.Context) error {
        captured = c.Get("user_id")
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec, captured
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    at, err := utils.NewAccessToken("secret", 42, 15)
    require.NoError(t, err)

    rec, userID := runJWT(t, "secret", "Bearer "+at.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
    // MapClaims stores numeric claims as float64.
    assert.Equal(t, float64(42), userID)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
    rec, _ := runJWT(t, "secret", "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
    at, err := utils.NewAccessToken("other", 42, 15)
    require.NoError(t, err)

    rec, _ := runJWT(t, "secret", "Bearer "+at.Token)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
