package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/config"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
)

const (
	alreadyLikedDetail        = "You have already liked this discussion"
	alreadyLikedCommentDetail = "You have already liked this comment"
)

type LikeController struct {
	Likes       repository.LikeRepository
	Discussions repository.DiscussionRepository
}

func NewLikeController(likes repository.LikeRepository, discussions repository.DiscussionRepository) *LikeController {
	return &LikeController{Likes: likes, Discussions: discussions}
}

// LikeDiscussion godoc
// @Summary Like a discussion
// @Description A user may like a discussion once; a second like is a conflict.
// @Tags likes
// @Accept json
// @Produce json
// @Success 201 {object} LikeResponse
// @Router /likes/ [post]
func (lc *LikeController) LikeDiscussion(c *gin.Context) {
	var req LikeCreateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	discussionID := *req.Discussion
	exists, err := lc.Discussions.Exists(ctx, discussionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		respondError(c, apperror.NewNotFound("Discussion not found"))
		return
	}

	userID := callerID(c)
	liked, err := lc.Likes.Exists(ctx, userID, discussionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if liked {
		respondError(c, apperror.NewConflict(alreadyLikedDetail))
		return
	}

	like := models.Like{UserID: userID, DiscussionID: discussionID}
	if err := lc.Likes.Create(ctx, &like); err != nil {
		// lost a race with a concurrent like
		if errors.Is(err, repository.ErrDuplicate) {
			err = apperror.NewConflict(alreadyLikedDetail)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newLikeResponse(&like))
}

// UnlikeDiscussion removes the caller's like of the discussion in the path.
func (lc *LikeController) UnlikeDiscussion(c *gin.Context) {
	discussionID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	like, err := lc.Likes.GetByUserAndDiscussion(ctx, callerID(c), discussionID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperror.NewNotFound("Like not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if err := lc.Likes.Delete(ctx, like.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (lc *LikeController) ListLikes(c *gin.Context) {
	likes, err := lc.Likes.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]LikeResponse, 0, len(likes))
	for i := range likes {
		out = append(out, newLikeResponse(&likes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (lc *LikeController) GetLike(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	like, err := lc.Likes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLikeResponse(like))
}

// UpdateLike moves the caller's like, found by its own id, to another
// discussion. Only the owner may.
func (lc *LikeController) UpdateLike(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	like, err := lc.Likes.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorize(c, permissions.OwnerOrReadOnly, like, permissions.Update); err != nil {
		respondError(c, err)
		return
	}

	var req LikeUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if isPut(c) {
		if err := req.ValidateFull(); err != nil {
			respondError(c, err)
			return
		}
	}

	if req.Discussion != nil && *req.Discussion != like.DiscussionID {
		discussionID := *req.Discussion
		exists, err := lc.Discussions.Exists(ctx, discussionID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !exists {
			respondError(c, invalidPK(discussionID))
			return
		}
		liked, err := lc.Likes.Exists(ctx, like.UserID, discussionID)
		if err != nil {
			respondError(c, err)
			return
		}
		if liked {
			respondError(c, apperror.NewConflict(alreadyLikedDetail))
			return
		}
		like.DiscussionID = discussionID
	}

	if err := lc.Likes.Update(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = apperror.NewConflict(alreadyLikedDetail)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLikeResponse(like))
}

type CommentLikeController struct {
	CommentLikes repository.CommentLikeRepository
	Comments     repository.CommentRepository
	Policy       config.LikePolicy
}

func NewCommentLikeController(commentLikes repository.CommentLikeRepository, comments repository.CommentRepository, policy config.LikePolicy) *CommentLikeController {
	return &CommentLikeController{CommentLikes: commentLikes, Comments: comments, Policy: policy}
}

// LikeComment records a comment like. Repeat likes by the same user are
// accepted unless the like policy makes comment likes unique.
func (clc *CommentLikeController) LikeComment(c *gin.Context) {
	var req CommentLikeCreateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	exists, err := clc.Comments.Exists(ctx, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		respondError(c, invalidPK(req.Comment))
		return
	}

	userID := callerID(c)
	if clc.Policy.CommentLikeUnique {
		liked, err := clc.CommentLikes.Exists(ctx, userID, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		if liked {
			respondError(c, apperror.NewConflict(alreadyLikedCommentDetail))
			return
		}
	}

	like := models.CommentLike{UserID: userID, CommentID: req.Comment}
	if err := clc.CommentLikes.Create(ctx, &like); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentLikeResponse(&like))
}

func (clc *CommentLikeController) ListCommentLikes(c *gin.Context) {
	likes, err := clc.CommentLikes.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]CommentLikeResponse, 0, len(likes))
	for i := range likes {
		out = append(out, newCommentLikeResponse(&likes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (clc *CommentLikeController) GetCommentLike(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	like, err := clc.CommentLikes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentLikeResponse(like))
}

// UpdateCommentLike moves a comment like to another comment. Only its owner
// may, and a unique like policy still applies to the new target.
func (clc *CommentLikeController) UpdateCommentLike(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	like, err := clc.CommentLikes.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorize(c, permissions.OwnerOrReadOnly, like, permissions.Update); err != nil {
		respondError(c, err)
		return
	}

	var req CommentLikeUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if isPut(c) {
		if err := req.ValidateFull(); err != nil {
			respondError(c, err)
			return
		}
	}

	if req.Comment != nil && *req.Comment != like.CommentID {
		commentID := *req.Comment
		exists, err := clc.Comments.Exists(ctx, commentID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !exists {
			respondError(c, invalidPK(commentID))
			return
		}
		if clc.Policy.CommentLikeUnique {
			liked, err := clc.CommentLikes.Exists(ctx, like.UserID, commentID)
			if err != nil {
				respondError(c, err)
				return
			}
			if liked {
				respondError(c, apperror.NewConflict(alreadyLikedCommentDetail))
				return
			}
		}
		like.CommentID = commentID
	}

	if err := clc.CommentLikes.Update(ctx, like); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentLikeResponse(like))
}

// DeleteCommentLike removes a comment like by its own id. Only its owner may.
func (clc *CommentLikeController) DeleteCommentLike(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	like, err := clc.CommentLikes.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorize(c, permissions.OwnerOrReadOnly, like, permissions.Delete); err != nil {
		respondError(c, err)
		return
	}
	if err := clc.CommentLikes.Delete(ctx, like.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
