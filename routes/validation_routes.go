package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/controllers"
)

func SetupValidationRoutes(r *gin.Engine, validationController *controllers.ValidationController) {
	validation := r.Group("/validation")
	{
		validation.GET("/email/:email", validationController.ValidateEmail)
	}
}
