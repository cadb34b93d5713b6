package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/gin-gonic/gin"
)

// Register mounts every route group on server.
func Register(server *gin.Engine, h *controllers.Handlers) {
	DefaultRoutes(server, h)
	AuthRoutes(server, h)
	ProductRoutes(server, h)
	CartRoutes(server, h)
	OrderRoutes(server, h)
	AdminRoutes(server, h)
}
