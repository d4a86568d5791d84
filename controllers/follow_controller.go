package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/utils/log"
)

const alreadyFollowingDetail = "You are already following this user"

type FollowController struct {
	Users   repository.UserRepository
	Follows repository.FollowRepository
}

func NewFollowController(users repository.UserRepository, follows repository.FollowRepository) *FollowController {
	return &FollowController{Users: users, Follows: follows}
}

// FollowUser godoc
// @Summary Follow a user
// @Description Creates the (caller, following_id) pair. Following yourself is allowed.
// @Tags follows
// @Accept json
// @Produce json
// @Success 201 {object} FollowResponse
// @Router /follows/ [post]
func (fc *FollowController) FollowUser(c *gin.Context) {
	var req FollowCreateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	target, err := fc.Users.Get(ctx, *req.FollowingID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperror.NewValidation("User to follow does not exist"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	followerID := callerID(c)
	if _, err := fc.Follows.GetPair(ctx, followerID, target.ID); err == nil {
		respondError(c, apperror.NewConflict(alreadyFollowingDetail))
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	follow := models.Follow{FollowerID: followerID, FollowingID: target.ID}
	if err := fc.Follows.Create(ctx, &follow); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = apperror.NewConflict(alreadyFollowingDetail)
		}
		respondError(c, err)
		return
	}

	log.Log.WithField("follower_id", followerID).WithField("following_id", target.ID).Info("user followed")
	c.JSON(http.StatusCreated, newFollowResponse(&follow))
}

// UnfollowUser removes the caller's follow of the user in the path.
func (fc *FollowController) UnfollowUser(c *gin.Context) {
	followingID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	follow, err := fc.Follows.GetPair(ctx, callerID(c), followingID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperror.NewNotFound("Follow not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorize(c, permissions.OwnerOrReadOnly, follow, permissions.Delete); err != nil {
		respondError(c, apperror.NewForbidden("You cannot unfollow this user"))
		return
	}

	if err := fc.Follows.Delete(ctx, follow.ID); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, followingID, "User unfollowed successfully")
}

func (fc *FollowController) ListFollows(c *gin.Context) {
	follows, err := fc.Follows.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]FollowResponse, 0, len(follows))
	for i := range follows {
		out = append(out, newFollowResponse(&follows[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (fc *FollowController) GetFollow(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	follow, err := fc.Follows.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFollowResponse(follow))
}

// GetUserFollowers lists {id, name} of everyone following the user.
func (fc *FollowController) GetUserFollowers(c *gin.Context) {
	userID, err := pathID(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	users, err := fc.Follows.Followers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPartyResponses(users))
}

// GetUserFollowing lists {id, name} of everyone the user follows.
func (fc *FollowController) GetUserFollowing(c *gin.Context) {
	userID, err := pathID(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	users, err := fc.Follows.Following(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPartyResponses(users))
}
