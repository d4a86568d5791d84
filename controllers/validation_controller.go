package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/utils"
)

type ValidationController struct {
	Users repository.UserRepository
}

func NewValidationController(users repository.UserRepository) *ValidationController {
	return &ValidationController{Users: users}
}

// ValidateEmail reports whether an account already uses the address.
func (vc *ValidationController) ValidateEmail(c *gin.Context) {
	email := utils.NormalizeEmail(c.Param("email"))

	exists, err := vc.Users.ExistsByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}
