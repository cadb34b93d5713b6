package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, h *controllers.Handlers) {
	cart := server.Group("/cart", middlewares.RequireAuth(h.JWTSecret))
	{
		cart.GET("", h.GetCart)
		cart.POST("/:productId", h.AddToCart())
		cart.DELETE("/:productId", h.RemoveFromCart())
		cart.PATCH("/:productId/increase", h.IncreaseCartItem())
		cart.PATCH("/:productId/decrease", h.DecreaseCartItem())
	}
}
