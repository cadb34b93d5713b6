package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/query"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type updateOrderStatusRequest struct {
	OrderStatusID uint `json:"orderStatusId" binding:"required"`
}

func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// GetMyOrders lists the caller's orders.
func (h *Handlers) GetMyOrders(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	listing, err := h.Orders.List(ctx.Request.Context(), query.FromValues(ctx.Request.URL.Query()), query.Where(ownedBy(userID)))
	if err != nil {
		respondWithServiceError(ctx, h.Logger, h.Orders.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, listing)
}

// GetMyOrder returns one of the caller's orders. Orders of other users are reported as not found.
func (h *Handlers) GetMyOrder(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Get(ctx.Request.Context(), orderID, ownedBy(userID))
	if err != nil {
		respondWithServiceError(ctx, h.Logger, h.Orders.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// UpdateOrderStatus moves an order to any existing status.
func (h *Handlers) UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req updateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	db := h.DB.WithContext(ctx.Request.Context())

	var status models.OrderStatus
	if err := db.First(&status, req.OrderStatusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order status not found")
			return
		}
		h.Logger.Error("order status lookup failed", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("order_status_id", status.ID)
	if result.Error != nil {
		h.Logger.Error("order status update failed", zap.Uint("order_id", orderID), zap.Error(result.Error))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated to " + status.Name})
}
