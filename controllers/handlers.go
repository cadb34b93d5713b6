package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/Kariqs/amexan-store/crud"
	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Standard response messages
	msgInvalidInput        = "invalid input"
	msgInvalidID           = "invalid id"
	msgInternalServerError = "Internal server error"
	msgUnauthorized        = "User not found in context"
)

// Handlers carries the dependencies shared by every route handler.
type Handlers struct {
	DB        *gorm.DB
	Cart      *cart.Service
	Images    utils.ImageStore
	Logger    *zap.Logger
	JWTSecret string

	Products   *crud.Service[models.Product]
	Categories *crud.Service[models.Category]
	Orders     *crud.Service[models.Order]

	// Admin holds one back-office resource per administrable entity.
	Admin []AdminResource
}

// NewHandlers wires the services. images may be nil when no bucket is configured.
func NewHandlers(db *gorm.DB, images utils.ImageStore, logger *zap.Logger, jwtSecret string, pageSize int) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handlers{
		DB:        db,
		Cart:      cart.NewService(cart.NewGormStore(db), logger.Named("cart")),
		Images:    images,
		Logger:    logger,
		JWTSecret: jwtSecret,
	}
	h.Admin = h.adminResources(pageSize)
	return h
}

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return uint(id), true
}

// currentUserID reads the user id from the claims RequireAuth stored.
func currentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		return 0, false
	}
	claims, ok := value.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	// JSON numbers decode as float64.
	id, ok := claims["user_id"].(float64)
	if !ok || id < 1 {
		return 0, false
	}
	return uint(id), true
}

func requireUserID(ctx *gin.Context) (uint, bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgUnauthorized)
	}
	return userID, ok
}

// respondWithServiceError maps crud errors to HTTP statuses.
func respondWithServiceError(ctx *gin.Context, logger *zap.Logger, label string, err error) {
	var constraint *crud.ConstraintError
	switch {
	case errors.Is(err, crud.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, label+" not found")
	case errors.As(err, &constraint):
		sendErrorResponse(ctx, http.StatusConflict, constraint.Message)
	case errors.Is(err, crud.ErrValidation):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}
