package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/middleware"
	"github.com/spyne-social/api-go/permissions"
)

func SetupDiscussionRoutes(r *gin.Engine, discussionController *controllers.DiscussionController) {
	authenticated := middleware.Require(permissions.Authenticated)
	ownerOnly := middleware.Require(permissions.OwnerOnly)

	discussions := r.Group("/discussions")
	{
		discussions.GET("/search", discussionController.SearchDiscussions)

		discussions.GET("/", authenticated, discussionController.ListDiscussions)
		discussions.POST("/", authenticated, discussionController.CreateDiscussion)
		discussions.GET("/:id", authenticated, discussionController.GetDiscussion)
		discussions.PUT("/:id", ownerOnly, discussionController.UpdateDiscussion)
		discussions.PATCH("/:id", ownerOnly, discussionController.UpdateDiscussion)
		discussions.DELETE("/:id", ownerOnly, discussionController.DeleteDiscussion)

		discussions.PUT("/update/:id", ownerOnly, discussionController.UpdateDiscussion)
		discussions.PATCH("/update/:id", ownerOnly, discussionController.UpdateDiscussion)
		discussions.DELETE("/delete/:id", ownerOnly, discussionController.DeleteDiscussion)
	}
}
