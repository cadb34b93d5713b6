package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, h *controllers.Handlers) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}
}
