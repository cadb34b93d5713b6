package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Amexan API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

CATALOG
- GET "/products" - List active products (search, sort, page, category)
- GET "/products/:id" - Get product by ID
- GET "/categories" - List categories

CART (signed in)
- GET "/cart" - Cart lines with item count and total price
- POST "/cart/:productId" - Add one unit
- DELETE "/cart/:productId" - Remove the line
- PATCH "/cart/:productId/increase" - Increase quantity
- PATCH "/cart/:productId/decrease" - Decrease quantity

ORDERS (signed in)
- GET "/orders" - List own orders
- GET "/orders/:id" - Get own order

ADMIN (admin role)
- GET|POST "/admin/:entity" - List or create
- GET|PUT|DELETE "/admin/:entity/:id" - Read, update or delete
- POST "/admin/:entity/search" - List with JSON parameters
- POST "/admin/:entity/delete" - Delete selected ids
- GET "/admin/:entity/export" - Download as Excel
- PATCH "/admin/orders/:id/status" - Update order status
- POST "/admin/products/:id/images" - Upload product images`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// Healthz reports whether the database answers.
func (h *Handlers) Healthz(ctx *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		h.Logger.Warn("health check failed", zap.Error(err))
		sendJSONResponse(ctx, http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "ok"})
}
