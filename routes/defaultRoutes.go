package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, h *controllers.Handlers) {
	server.GET("/", controllers.GetHome)
	server.GET("/healthz", h.Healthz)
}
