package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func runWithAuth(t *testing.T, authz string) *int64 {
	t.Helper()

	var got *int64
	e := echo.New()
	e.Use(OptionalAuthJWT(config.Config{JWTSecret: testSecret}))
	e.GET("/x", func(c echo.Context) error {
		got = UserIDFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	return got
}

func TestOptionalAuthJWT_NoHeaderIsAnonymous(t *testing.T) {
	got := runWithAuth(t, "")
	assert.Nil(t, got)
}

func TestOptionalAuthJWT_ValidTokenSetsUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "42",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	got := runWithAuth(t, "Bearer "+token)
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(42), *got)
	}
}

func TestOptionalAuthJWT_NumericSubClaim(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	got := runWithAuth(t, "Bearer "+token)
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(7), *got)
	}
}

// 壊れたトークンは拒否ではなく匿名扱い（紐付けは任意のため）
func TestOptionalAuthJWT_InvalidTokenIsAnonymous(t *testing.T) {
	got := runWithAuth(t, "Bearer not.a.token")
	assert.Nil(t, got)
}

func TestOptionalAuthJWT_ExpiredTokenIsAnonymous(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	got := runWithAuth(t, "Bearer "+token)
	assert.Nil(t, got)
}

func TestOptionalAuthJWT_WrongSchemeIsAnonymous(t *testing.T) {
	got := runWithAuth(t, "Basic dXNlcjpwYXNz")
	assert.Nil(t, got)
}
