package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/utils"
)

// Requests

type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Name     string `json:"name" binding:"required,max=255"`
	Mobile   string `json:"mobile" binding:"required,max=15"`
	Password string `json:"password" binding:"required"`
}

func (r *UserCreateRequest) Validate() error {
	if err := notBlank(map[string]string{"name": r.Name, "mobile": r.Mobile, "password": r.Password}); err != nil {
		return err
	}
	return passwordLength(r.Password)
}

// UserUpdateRequest serves both PUT and PATCH. Absent fields are nil.
type UserUpdateRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Mobile   *string `json:"mobile" binding:"omitempty,max=15"`
	Password *string `json:"password"`
}

func (r *UserUpdateRequest) Validate() error {
	if err := notBlankPtr(map[string]*string{"name": r.Name, "mobile": r.Mobile, "password": r.Password}); err != nil {
		return err
	}
	if r.Password != nil {
		return passwordLength(*r.Password)
	}
	return nil
}

// ValidateFull additionally requires every field, as a PUT must.
func (r *UserUpdateRequest) ValidateFull() error {
	return required(map[string]bool{
		"email":    r.Email != nil,
		"name":     r.Name != nil,
		"mobile":   r.Mobile != nil,
		"password": r.Password != nil,
	})
}

type FollowCreateRequest struct {
	FollowingID *uint `json:"following_id"`
}

func (r *FollowCreateRequest) Validate() error {
	if r.FollowingID == nil || *r.FollowingID == 0 {
		return apperror.NewValidation("following_id is required")
	}
	return nil
}

type DiscussionRequest struct {
	Text     *string `json:"text" form:"text"`
	Hashtags *string `json:"hashtags" form:"hashtags"`
}

func (r *DiscussionRequest) Validate() error {
	return notBlankPtr(map[string]*string{"text": r.Text})
}

func (r *DiscussionRequest) ValidateFull() error {
	return required(map[string]bool{"text": r.Text != nil})
}

type CommentCreateRequest struct {
	Discussion uint   `json:"discussion" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

func (r *CommentCreateRequest) Validate() error {
	return notBlank(map[string]string{"text": r.Text})
}

type ReplyCreateRequest struct {
	Comment uint   `json:"comment" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

func (r *ReplyCreateRequest) Validate() error {
	return notBlank(map[string]string{"text": r.Text})
}

// TextUpdateRequest updates a comment or reply. The parent is fixed at
// creation and any parent id in the body is ignored.
type TextUpdateRequest struct {
	Text *string `json:"text"`
}

func (r *TextUpdateRequest) Validate() error {
	return notBlankPtr(map[string]*string{"text": r.Text})
}

func (r *TextUpdateRequest) ValidateFull() error {
	return required(map[string]bool{"text": r.Text != nil})
}

type LikeCreateRequest struct {
	Discussion *uint `json:"discussion"`
}

func (r *LikeCreateRequest) Validate() error {
	if r.Discussion == nil || *r.Discussion == 0 {
		return apperror.NewValidation("Discussion ID is required")
	}
	return nil
}

// LikeUpdateRequest moves a like to another discussion.
type LikeUpdateRequest struct {
	Discussion *uint `json:"discussion"`
}

func (r *LikeUpdateRequest) ValidateFull() error {
	return required(map[string]bool{"discussion": r.Discussion != nil})
}

type CommentLikeCreateRequest struct {
	Comment uint `json:"comment" binding:"required"`
}

type CommentLikeUpdateRequest struct {
	Comment *uint `json:"comment"`
}

func (r *CommentLikeUpdateRequest) ValidateFull() error {
	return required(map[string]bool{"comment": r.Comment != nil})
}

// Responses

type UserResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Mobile: u.Mobile, Email: u.Email}
}

func newUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

// PartyResponse is the projection used by follower and following listings.
type PartyResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newPartyResponses(users []models.User) []PartyResponse {
	out := make([]PartyResponse, 0, len(users))
	for _, u := range users {
		out = append(out, PartyResponse{ID: u.ID, Name: u.Name})
	}
	return out
}

type FollowResponse struct {
	ID        uint         `json:"id"`
	Follower  UserResponse `json:"follower"`
	Following UserResponse `json:"following"`
	CreatedAt time.Time    `json:"created_at"`
}

func newFollowResponse(f *models.Follow) FollowResponse {
	return FollowResponse{
		ID:        f.ID,
		Follower:  newUserResponse(&f.Follower),
		Following: newUserResponse(&f.Following),
		CreatedAt: f.CreatedAt,
	}
}

type CommentResponse struct {
	ID         uint      `json:"id"`
	User       uint      `json:"user"`
	Discussion uint      `json:"discussion"`
	Text       string    `json:"text"`
	CreatedOn  time.Time `json:"created_on"`
}

func newCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, User: c.UserID, Discussion: c.DiscussionID, Text: c.Text, CreatedOn: c.CreatedOn}
}

type DiscussionResponse struct {
	ID        uint              `json:"id"`
	User      uint              `json:"user"`
	Text      string            `json:"text"`
	Image     *string           `json:"image"`
	Hashtags  string            `json:"hashtags"`
	CreatedOn time.Time         `json:"created_on"`
	Views     int               `json:"views"`
	Likes     int               `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
}

func newDiscussionResponse(d *models.Discussion) DiscussionResponse {
	comments := make([]CommentResponse, 0, len(d.Comments))
	for i := range d.Comments {
		comments = append(comments, newCommentResponse(&d.Comments[i]))
	}
	return DiscussionResponse{
		ID:        d.ID,
		User:      d.UserID,
		Text:      d.Text,
		Image:     d.Image,
		Hashtags:  d.Hashtags,
		CreatedOn: d.CreatedOn,
		Views:     d.Views,
		Likes:     len(d.Likes),
		Comments:  comments,
	}
}

type ReplyResponse struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	Comment   uint      `json:"comment"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"created_on"`
}

func newReplyResponse(r *models.Reply) ReplyResponse {
	return ReplyResponse{ID: r.ID, User: r.UserID, Comment: r.CommentID, Text: r.Text, CreatedOn: r.CreatedOn}
}

type LikeResponse struct {
	ID         uint      `json:"id"`
	User       uint      `json:"user"`
	Discussion uint      `json:"discussion"`
	CreatedOn  time.Time `json:"created_on"`
}

func newLikeResponse(l *models.Like) LikeResponse {
	return LikeResponse{ID: l.ID, User: l.UserID, Discussion: l.DiscussionID, CreatedOn: l.CreatedOn}
}

type CommentLikeResponse struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	Comment   uint      `json:"comment"`
	CreatedOn time.Time `json:"created_on"`
}

func newCommentLikeResponse(l *models.CommentLike) CommentLikeResponse {
	return CommentLikeResponse{ID: l.ID, User: l.UserID, Comment: l.CommentID, CreatedOn: l.CreatedOn}
}

// DeletedResponse is returned with 204 by the delete endpoints.
type DeletedResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

type AccessResponse struct {
	Access string `json:"access"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

func notBlank(fields map[string]string) error {
	for _, name := range sortedKeys(fields) {
		if strings.TrimSpace(fields[name]) == "" {
			return apperror.NewValidation(name + ": This field may not be blank.")
		}
	}
	return nil
}

func notBlankPtr(fields map[string]*string) error {
	for _, name := range sortedKeys(fields) {
		if v := fields[name]; v != nil && strings.TrimSpace(*v) == "" {
			return apperror.NewValidation(name + ": This field may not be blank.")
		}
	}
	return nil
}

// passwordLength counts bytes, not characters, as bcrypt does.
func passwordLength(password string) error {
	if len(password) > utils.MaxPasswordBytes {
		return apperror.NewValidation(fmt.Sprintf("password: Ensure this field has no more than %d bytes.", utils.MaxPasswordBytes))
	}
	return nil
}

func required(present map[string]bool) error {
	for _, name := range sortedKeys(present) {
		if !present[name] {
			return apperror.NewValidation(name + ": This field is required.")
		}
	}
	return nil
}
