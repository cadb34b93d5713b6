package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, h *controllers.Handlers) {
	orders := server.Group("/orders", middlewares.RequireAuth(h.JWTSecret))
	{
		orders.GET("", h.GetMyOrders)
		orders.GET("/:id", h.GetMyOrder)
	}
}
