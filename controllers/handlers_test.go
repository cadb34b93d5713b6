package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/Kariqs/amexan-store/crud"
	"github.com/Kariqs/amexan-store/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCartStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{cart.ErrNotFound, http.StatusNotFound},
		{cart.ErrOutOfStock, http.StatusConflict},
		{cart.ErrExceedsStock, http.StatusConflict},
		{cart.ErrValidation, http.StatusBadRequest},
		{cart.ErrStore, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, cartStatus(tt.err))
		})
	}
}

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		claims any
		want   uint
		ok     bool
	}{
		{name: "numeric claim", claims: jwt.MapClaims{"user_id": float64(12)}, want: 12, ok: true},
		{name: "missing claim", claims: jwt.MapClaims{}, ok: false},
		{name: "zero id", claims: jwt.MapClaims{"user_id": float64(0)}, ok: false},
		{name: "string id", claims: jwt.MapClaims{"user_id": "12"}, ok: false},
		{name: "wrong type", claims: "not claims", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Set("user", tt.claims)

			got, ok := currentUserID(ctx)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondWithServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: fmt.Errorf("Brand 3: %w", crud.ErrNotFound), status: http.StatusNotFound},
		{name: "duplicate", err: &crud.ConstraintError{Message: "taken"}, status: http.StatusConflict},
		{name: "validation", err: fmt.Errorf("%w: no ids", crud.ErrValidation), status: http.StatusBadRequest},
		{name: "other", err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			respondWithServiceError(ctx, zap.NewNop(), "Brand", tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestPreparePassword(t *testing.T) {
	user := models.User{NewPassword: "longenough"}
	require.NoError(t, preparePassword(&user, true))
	assert.Empty(t, user.NewPassword)
	assert.NoError(t, comparePasswords(user.Password, "longenough"))

	assert.ErrorIs(t, preparePassword(&models.User{}, true), crud.ErrValidation)

	unchanged := models.User{}
	require.NoError(t, preparePassword(&unchanged, false))
	assert.Empty(t, unchanged.Password)
}

func TestGenerateJWT(t *testing.T) {
	user := models.User{Email: "a@b.co", Role: &models.Role{Name: models.RoleAdmin}}
	user.ID = 5

	token, err := generateJWT(user, "secret")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, float64(5), claims["user_id"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
	assert.Equal(t, "a@b.co", claims["email"])
}
