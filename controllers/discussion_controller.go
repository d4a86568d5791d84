package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/filters"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/storage"
	"github.com/spyne-social/api-go/utils/log"
)

type DiscussionController struct {
	Discussions repository.DiscussionRepository
	// Images is nil when no bucket is configured; uploads are then rejected.
	Images       storage.ImageStore
	MaxImageSize int64
}

func NewDiscussionController(discussions repository.DiscussionRepository, images storage.ImageStore, maxImageSize int64) *DiscussionController {
	return &DiscussionController{
		Discussions:  discussions,
		Images:       images,
		MaxImageSize: maxImageSize,
	}
}

// CreateDiscussion godoc
// @Summary Create a discussion
// @Description Accepts JSON or multipart/form-data with an optional "image" file. The owner is the caller.
// @Tags discussions
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} DiscussionResponse
// @Router /discussions/ [post]
func (dc *DiscussionController) CreateDiscussion(c *gin.Context) {
	req, image, err := dc.bindDiscussion(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := req.ValidateFull(); err != nil {
		respondError(c, err)
		return
	}

	ownerID := callerID(c)
	discussion := models.Discussion{
		UserID: ownerID,
		Text:   *req.Text,
	}
	if req.Hashtags != nil {
		discussion.Hashtags = *req.Hashtags
	}
	if image != nil {
		url, err := dc.saveImage(c, ownerID, image)
		if err != nil {
			respondError(c, err)
			return
		}
		discussion.Image = &url
	}

	if err := dc.Discussions.Create(c.Request.Context(), &discussion); err != nil {
		if discussion.Image != nil {
			dc.deleteImage(c, *discussion.Image)
		}
		respondError(c, err)
		return
	}

	log.Log.WithField("discussion_id", discussion.ID).WithField("user_id", ownerID).Info("discussion created")
	c.JSON(http.StatusCreated, newDiscussionResponse(&discussion))
}

// GetDiscussion counts the read before returning the discussion.
func (dc *DiscussionController) GetDiscussion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	discussion, err := dc.Discussions.IncrementViews(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperror.NewNotFound("Discussion not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDiscussionResponse(discussion))
}

func (dc *DiscussionController) ListDiscussions(c *gin.Context) {
	dc.listDiscussions(c, filters.DiscussionFilter{})
}

// SearchDiscussions filters by the "hashtags" (comma separated, any whole
// tag) and "text" (case-insensitive substring) query parameters.
func (dc *DiscussionController) SearchDiscussions(c *gin.Context) {
	dc.listDiscussions(c, filters.ParseDiscussionFilter(c.Query("hashtags"), c.Query("text")))
}

func (dc *DiscussionController) listDiscussions(c *gin.Context, filter filters.DiscussionFilter) {
	discussions, err := dc.Discussions.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]DiscussionResponse, 0, len(discussions))
	for i := range discussions {
		out = append(out, newDiscussionResponse(&discussions[i]))
	}
	c.JSON(http.StatusOK, out)
}

// UpdateDiscussion is owner only. PUT requires text, PATCH takes any subset.
// A replaced image is removed from the store once the update is saved.
func (dc *DiscussionController) UpdateDiscussion(c *gin.Context) {
	discussion, ok := dc.loadForMutation(c, permissions.Update)
	if !ok {
		return
	}

	req, image, err := dc.bindDiscussion(c)
	if err != nil {
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
		discussion.Text = *req.Text
	}
	if req.Hashtags != nil {
		discussion.Hashtags = *req.Hashtags
	}
	var previousImage *string
	if image != nil {
		url, err := dc.saveImage(c, discussion.UserID, image)
		if err != nil {
			respondError(c, err)
			return
		}
		previousImage = discussion.Image
		discussion.Image = &url
	}

	if err := dc.Discussions.Update(c.Request.Context(), discussion); err != nil {
		if image != nil {
			dc.deleteImage(c, *discussion.Image)
		}
		respondError(c, err)
		return
	}
	if previousImage != nil {
		dc.deleteImage(c, *previousImage)
	}
	c.JSON(http.StatusOK, newDiscussionResponse(discussion))
}

// DeleteDiscussion is owner only and removes comments, replies and likes
// with it. The stored image is removed afterwards.
func (dc *DiscussionController) DeleteDiscussion(c *gin.Context) {
	discussion, ok := dc.loadForMutation(c, permissions.Delete)
	if !ok {
		return
	}
	if err := dc.Discussions.Delete(c.Request.Context(), discussion.ID); err != nil {
		respondError(c, err)
		return
	}
	if discussion.Image != nil {
		dc.deleteImage(c, *discussion.Image)
	}
	log.Log.WithField("discussion_id", discussion.ID).Info("discussion deleted")
	deleted(c, discussion.ID, "Discussion deleted successfully")
}

func (dc *DiscussionController) loadForMutation(c *gin.Context, op permissions.Operation) (*models.Discussion, bool) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	discussion, err := dc.Discussions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if err := authorize(c, permissions.OwnerOnly, discussion, op); err != nil {
		respondError(c, err)
		return nil, false
	}
	return discussion, true
}

// bindDiscussion reads text and hashtags from a JSON or multipart body. The
// image file is only accepted in multipart bodies.
func (dc *DiscussionController) bindDiscussion(c *gin.Context) (*DiscussionRequest, *multipart.FileHeader, error) {
	var req DiscussionRequest
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := bindJSON(c, &req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	if text, ok := c.GetPostForm("text"); ok {
		req.Text = &text
	}
	if hashtags, ok := c.GetPostForm("hashtags"); ok {
		req.Hashtags = &hashtags
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	image, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return &req, nil, nil
	}
	if err != nil {
		return nil, nil, apperror.NewValidation("image: The submitted data was not a file.")
	}
	return &req, image, nil
}

func (dc *DiscussionController) saveImage(c *gin.Context, ownerID uint, image *multipart.FileHeader) (string, error) {
	if dc.Images == nil {
		return "", apperror.NewValidation("image: Image uploads are not enabled.")
	}
	if dc.MaxImageSize > 0 && image.Size > dc.MaxImageSize {
		return "", apperror.NewValidation(fmt.Sprintf("image: File exceeds the %d byte limit.", dc.MaxImageSize))
	}

	f, err := image.Open()
	if err != nil {
		return "", errors.Wrap(err, "open uploaded image")
	}
	defer f.Close()

	url, err := dc.Images.Save(c.Request.Context(), ownerID, image.Filename, image.Header.Get("Content-Type"), f)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		return "", apperror.NewValidation("image: Upload a valid image.")
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// deleteImage removes an image without failing the request.
func (dc *DiscussionController) deleteImage(c *gin.Context, url string) {
	if dc.Images == nil {
		return
	}
	if err := dc.Images.Delete(c.Request.Context(), url); err != nil {
		log.Log.WithError(err).WithField("image", url).Warn("failed to delete discussion image")
	}
}
