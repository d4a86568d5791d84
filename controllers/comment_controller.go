package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
)

type CommentController struct {
	Comments    repository.CommentRepository
	Discussions repository.DiscussionRepository
}

func NewCommentController(comments repository.CommentRepository, discussions repository.DiscussionRepository) *CommentController {
	return &CommentController{Comments: comments, Discussions: discussions}
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	var req CommentCreateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	exists, err := cc.Discussions.Exists(ctx, req.Discussion)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		respondError(c, invalidPK(req.Discussion))
		return
	}

	comment := models.Comment{
		UserID:       callerID(c),
		DiscussionID: req.Discussion,
		Text:         req.Text,
	}
	if err := cc.Comments.Create(ctx, &comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(&comment))
}

func (cc *CommentController) ListComments(c *gin.Context) {
	comments, err := cc.Comments.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (cc *CommentController) GetComment(c *gin.Context) {
	comment, ok := cc.load(c, permissions.Read)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(comment))
}

// UpdateComment changes the text only; the comment stays on its discussion.
func (cc *CommentController) UpdateComment(c *gin.Context) {
	comment, ok := cc.load(c, permissions.Update)
	if !ok {
		return
	}

	var req TextUpdateRequest
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
	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := cc.Comments.UpdateText(c.Request.Context(), comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(comment))
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	comment, ok := cc.load(c, permissions.Delete)
	if !ok {
		return
	}
	if err := cc.Comments.Delete(c.Request.Context(), comment.ID); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, comment.ID, "Comment deleted successfully")
}

func (cc *CommentController) load(c *gin.Context, op permissions.Operation) (*models.Comment, bool) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	comment, err := cc.Comments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if err := authorize(c, permissions.OwnerOrReadOnly, comment, op); err != nil {
		respondError(c, err)
		return nil, false
	}
	return comment, true
}
