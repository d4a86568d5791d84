package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/utils"
)

const invalidCredentialsDetail = "Invalid login credentials"

type AuthController struct {
	Users  repository.UserRepository
	Tokens *utils.TokenIssuer
}

func NewAuthController(users repository.UserRepository, tokens *utils.TokenIssuer) *AuthController {
	return &AuthController{Users: users, Tokens: tokens}
}

// ObtainToken godoc
// @Summary Exchange credentials for a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.TokenPair
// @Router /token/ [post]
func (ac *AuthController) ObtainToken(c *gin.Context) {
	var req TokenRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := ac.Users.GetByEmail(c.Request.Context(), utils.NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperror.NewValidation(invalidCredentialsDetail))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if !user.IsActive || !utils.CheckPassword(user.Password, req.Password) {
		respondError(c, apperror.NewValidation(invalidCredentialsDetail))
		return
	}

	pair, err := ac.Tokens.IssuePair(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// RefreshToken godoc
// @Summary Trade a refresh token for a new access token
// @Tags auth
// @Router /token/refresh/ [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	claims, err := ac.Tokens.Parse(req.Refresh, utils.RefreshToken)
	if err != nil {
		respondError(c, apperror.NewUnauthenticated("Token is invalid or expired"))
		return
	}

	user, err := ac.Users.Get(c.Request.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !user.IsActive) {
		respondError(c, apperror.NewUnauthenticated("Token is invalid or expired"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	access, err := ac.Tokens.Issue(user.ID, utils.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccessResponse{Access: access})
}
