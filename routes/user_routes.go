package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/middleware"
	"github.com/spyne-social/api-go/permissions"
)

func SetupUserRoutes(r *gin.Engine, userController *controllers.UserController, followController *controllers.FollowController) {
	authenticated := middleware.Require(permissions.Authenticated)

	users := r.Group("/users")
	{
		users.GET("/", userController.ListUsers)
		users.POST("/", userController.CreateUser)
		users.GET("/search", userController.SearchUsers)
		users.GET("/:id", userController.GetUser)
		users.PUT("/:id", authenticated, userController.UpdateUser)
		users.PATCH("/:id", authenticated, userController.UpdateUser)
		users.DELETE("/:id", authenticated, userController.DeleteUser)

		users.PUT("/update/:id", authenticated, userController.UpdateUser)
		users.PATCH("/update/:id", authenticated, userController.UpdateUser)
		users.DELETE("/delete/:id", authenticated, userController.DeleteUser)

		users.GET("/followers/:user_id", authenticated, followController.GetUserFollowers)
		users.GET("/following/:user_id", authenticated, followController.GetUserFollowing)
	}
}
