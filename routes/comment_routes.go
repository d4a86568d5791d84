package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/middleware"
	"github.com/spyne-social/api-go/permissions"
)

func SetupCommentRoutes(r *gin.Engine, commentController *controllers.CommentController, replyController *controllers.ReplyController) {
	ownerOrReadOnly := middleware.Require(permissions.OwnerOrReadOnly)

	comments := r.Group("/comments")
	comments.Use(ownerOrReadOnly)
	{
		comments.GET("/", commentController.ListComments)
		comments.POST("/", commentController.CreateComment)
		comments.GET("/:id", commentController.GetComment)
		comments.PUT("/:id", commentController.UpdateComment)
		comments.PATCH("/:id", commentController.UpdateComment)
		comments.DELETE("/:id", commentController.DeleteComment)
	}

	replies := r.Group("/replies")
	replies.Use(ownerOrReadOnly)
	{
		replies.GET("/", replyController.ListReplies)
		replies.POST("/", replyController.CreateReply)
		replies.GET("/:id", replyController.GetReply)
		replies.PUT("/:id", replyController.UpdateReply)
		replies.PATCH("/:id", replyController.UpdateReply)
		replies.DELETE("/:id", replyController.DeleteReply)
	}
}
