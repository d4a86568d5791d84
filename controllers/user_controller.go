package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/utils"
	"github.com/spyne-social/api-go/utils/log"
)

const duplicateEmailDetail = "email: user with this email already exists."

type UserController struct {
	Users repository.UserRepository
}

func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// CreateUser godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} UserResponse
// @Router /users/ [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	email := utils.NormalizeEmail(req.Email)
	if err := uc.ensureEmailFree(c, email, 0); err != nil {
		respondError(c, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, errors.Wrap(err, "hash password"))
		return
	}

	user := models.User{
		Email:    email,
		Name:     req.Name,
		Mobile:   req.Mobile,
		Password: hash,
		IsActive: true,
	}
	if err := uc.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = apperror.NewValidation(duplicateEmailDetail)
		}
		respondError(c, err)
		return
	}

	log.Log.WithField("user_id", user.ID).Info("user registered")
	c.JSON(http.StatusCreated, newUserResponse(&user))
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := uc.Users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateUser handles PUT (every field required) and PATCH (any subset). A
// new password is re-hashed.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := uc.Users.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req UserUpdateRequest
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

	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		if err := uc.ensureEmailFree(c, email, user.ID); err != nil {
			respondError(c, err)
			return
		}
		user.Email = email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			respondError(c, errors.Wrap(err, "hash password"))
			return
		}
		user.Password = hash
	}

	if err := uc.Users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = apperror.NewValidation(duplicateEmailDetail)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := uc.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	log.Log.WithField("user_id", id).Info("user deleted")
	deleted(c, id, "User deleted successfully")
}

// SearchUsers matches the "name" query parameter as a case-insensitive
// substring. Without it every user is returned.
func (uc *UserController) SearchUsers(c *gin.Context) {
	name, ok := c.GetQuery("name")
	var (
		users []models.User
		err   error
	)
	if ok {
		users, err = uc.Users.SearchByName(c.Request.Context(), name)
	} else {
		users, err = uc.Users.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// ensureEmailFree fails when email belongs to a user other than selfID.
func (uc *UserController) ensureEmailFree(c *gin.Context, email string, selfID uint) error {
	existing, err := uc.Users.GetByEmail(c.Request.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apperror.NewValidation(duplicateEmailDetail)
	}
	return nil
}
