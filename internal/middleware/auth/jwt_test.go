package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "u1",
		"email": "juan@example.com",
		"name":  "Juan",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Use(JWTMiddleware(JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/health", "/api/v1/tiers"},
	}))
	handler := func(c echo.Context) error {
		user, err := RequireAuth(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, user)
	}
	e.GET("/api/v1/subscriptions/current", handler)
	e.GET("/api/v1/tiers", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func doRequest(e *echo.Echo, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	e := newTestEcho()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	rec := doRequest(e, "/api/v1/subscriptions/current", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"u1"`)
	assert.Contains(t, rec.Body.String(), `"email":"juan@example.com"`)
	assert.Contains(t, rec.Body.String(), `"display_name":"Juan"`)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	noSubject := validClaims()
	delete(noSubject, "sub")
	longSubject := validClaims()
	longSubject["sub"] = strings.Repeat("u", MaxSubjectLength+1)
	longEmail := validClaims()
	longEmail["email"] = strings.Repeat("j", MaxEmailLength) + "@example.com"
	longName := validClaims()
	longName["name"] = strings.Repeat("Juan ", 60)

	tests := []struct {
		name          string
		authorization string
		expectedCode  string
	}{
		{"missing header", "", "MISSING_AUTH_HEADER"},
		{"not bearer", "Basic dXNlcjpwYXNz", "INVALID_AUTH_FORMAT"},
		{"garbage token", "Bearer not-a-jwt", "INVALID_TOKEN"},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims()), "INVALID_TOKEN"},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired), "INVALID_TOKEN"},
		{"other hmac", "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims()), "INVALID_TOKEN"},
		{"no subject", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject), "MISSING_SUBJECT"},
		{"subject too long", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), longSubject), "INVALID_CLAIMS"},
		{"email too long", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), longEmail), "INVALID_CLAIMS"},
		{"name too long", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), longName), "INVALID_CLAIMS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newTestEcho(), "/api/v1/subscriptions/current", tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedCode)
		})
	}
}

func TestJWTMiddleware_AcceptsClaimsAtLimit(t *testing.T) {
	claims := validClaims()
	claims["sub"] = strings.Repeat("u", MaxSubjectLength)

	rec := doRequest(newTestEcho(), "/api/v1/subscriptions/current",
		"Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	rec := doRequest(newTestEcho(), "/api/v1/tiers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthUser_Identity(t *testing.T) {
	identity := (&AuthUser{UserID: "u1", Email: "e", DisplayName: "d"}).Identity()
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "e", identity.Email)
	assert.Equal(t, "d", identity.DisplayName)
}

func TestJWTMiddleware_DisplayNameFallback(t *testing.T) {
	claims := validClaims()
	delete(claims, "name")
	claims["display_name"] = "Juan D."
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

	rec := doRequest(newTestEcho(), "/api/v1/subscriptions/current", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display_name":"Juan D."`)
}

func TestRequireAuth_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	user, err := RequireAuth(c)
	assert.Nil(t, user)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
