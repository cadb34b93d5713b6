package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine, h *controllers.Handlers) {
	admin := server.Group("/admin", middlewares.RequireAuth(h.JWTSecret), middlewares.RequireAdmin())
	for _, resource := range h.Admin {
		resource.Register(admin)
	}
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	admin.POST("/products/:id/images", h.UploadProductImages)
}
