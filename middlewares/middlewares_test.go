package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/", RequireAuth(secret))
	authed.GET("/me", func(ctx *gin.Context) {
		claims := ctx.MustGet("user").(jwt.MapClaims)
		ctx.JSON(http.StatusOK, gin.H{"email": claims["email"]})
	})
	authed.GET("/admin", RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return router
}

func request(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	router := newRouter()
	valid := jwt.MapClaims{"user_id": 1, "email": "a@b.co", "role": "customer", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "valid", token: signToken(t, jwt.SigningMethodHS256, []byte(secret), valid), status: http.StatusOK},
		{name: "missing", token: "", status: http.StatusUnauthorized},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, []byte("other"), valid), status: http.StatusUnauthorized},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, []byte(secret), valid), status: http.StatusUnauthorized},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}), status: http.StatusUnauthorized},
		{name: "no expiry", token: signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": 1}), status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(router, "/me", tt.token)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	router := newRouter()
	exp := time.Now().Add(time.Hour).Unix()

	admin := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"role": "admin", "exp": exp})
	customer := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"role": "customer", "exp": exp})

	assert.Equal(t, http.StatusNoContent, request(router, "/admin", admin).Code)
	assert.Equal(t, http.StatusForbidden, request(router, "/admin", customer).Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "/admin", "").Code)
}
