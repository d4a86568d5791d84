package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/controllers"
)

func SetupAuthRoutes(r *gin.Engine, authController *controllers.AuthController) {
	token := r.Group("/token")
	{
		token.POST("/", authController.ObtainToken)
		token.POST("/refresh/", authController.RefreshToken)
	}
}
