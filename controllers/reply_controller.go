package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
)

type ReplyController struct {
	Replies  repository.ReplyRepository
	Comments repository.CommentRepository
}

func NewReplyController(replies repository.ReplyRepository, comments repository.CommentRepository) *ReplyController {
	return &ReplyController{Replies: replies, Comments: comments}
}

func (rc *ReplyController) CreateReply(c *gin.Context) {
	var req ReplyCreateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	exists, err := rc.Comments.Exists(ctx, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		respondError(c, invalidPK(req.Comment))
		return
	}

	reply := models.Reply{
		UserID:    callerID(c),
		CommentID: req.Comment,
		Text:      req.Text,
	}
	if err := rc.Replies.Create(ctx, &reply); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newReplyResponse(&reply))
}

func (rc *ReplyController) ListReplies(c *gin.Context) {
	replies, err := rc.Replies.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]ReplyResponse, 0, len(replies))
	for i := range replies {
		out = append(out, newReplyResponse(&replies[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (rc *ReplyController) GetReply(c *gin.Context) {
	reply, ok := rc.load(c, permissions.Read)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newReplyResponse(reply))
}

// UpdateReply changes the text only; the parent comment is fixed.
func (rc *ReplyController) UpdateReply(c *gin.Context) {
	reply, ok := rc.load(c, permissions.Update)
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
		reply.Text = *req.Text
	}

	if err := rc.Replies.UpdateText(c.Request.Context(), reply); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newReplyResponse(reply))
}

func (rc *ReplyController) DeleteReply(c *gin.Context) {
	reply, ok := rc.load(c, permissions.Delete)
	if !ok {
		return
	}
	if err := rc.Replies.Delete(c.Request.Context(), reply.ID); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, reply.ID, "Reply deleted successfully")
}

func (rc *ReplyController) load(c *gin.Context, op permissions.Operation) (*models.Reply, bool) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	reply, err := rc.Replies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if err := authorize(c, permissions.OwnerOrReadOnly, reply, op); err != nil {
		respondError(c, err)
		return nil, false
	}
	return reply, true
}
