package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, h *controllers.Handlers) {
	server.GET("/products", h.GetProducts)
	server.GET("/products/:id", h.GetProduct)
	server.GET("/categories", h.GetCategories)
}
