package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/middleware"
	"github.com/spyne-social/api-go/permissions"
)

func SetupFollowRoutes(r *gin.Engine, followController *controllers.FollowController) {
	follows := r.Group("/follows")
	follows.Use(middleware.Require(permissions.Authenticated))
	{
		follows.GET("/", followController.ListFollows)
		follows.POST("/", followController.FollowUser)
		follows.GET("/:id", followController.GetFollow)
		// :id is the followed user, not the follow row
		follows.DELETE("/:id", followController.UnfollowUser)
	}
}
