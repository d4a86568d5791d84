package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/middleware"
	"github.com/spyne-social/api-go/permissions"
)

func SetupLikeRoutes(r *gin.Engine, likeController *controllers.LikeController, commentLikeController *controllers.CommentLikeController) {
	authenticated := middleware.Require(permissions.Authenticated)

	likes := r.Group("/likes")
	likes.Use(authenticated)
	{
		likes.GET("/", likeController.ListLikes)
		likes.POST("/", likeController.LikeDiscussion)
		likes.GET("/:id", likeController.GetLike)
		likes.PUT("/:id", likeController.UpdateLike)
		likes.PATCH("/:id", likeController.UpdateLike)
		// :id is the liked discussion, not the like
		likes.DELETE("/:id", likeController.UnlikeDiscussion)
	}

	commentLikes := r.Group("/commentlikes")
	commentLikes.Use(authenticated)
	{
		commentLikes.GET("/", commentLikeController.ListCommentLikes)
		commentLikes.POST("/", commentLikeController.LikeComment)
		commentLikes.GET("/:id", commentLikeController.GetCommentLike)
		commentLikes.PUT("/:id", commentLikeController.UpdateCommentLike)
		commentLikes.PATCH("/:id", commentLikeController.UpdateCommentLike)
		commentLikes.DELETE("/:id", commentLikeController.DeleteCommentLike)
	}
}
