package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/utils"
	"github.com/spyne-social/api-go/utils/log"
)

const invalidTokenDetail = "Given token not valid for any token type"

// Authenticate resolves an optional "Authorization: Bearer <access>" header
// to an active user and records it on the context. Requests without the
// header continue anonymously; a header that does not resolve fails with 401.
func Authenticate(users repository.UserRepository, tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		bearerToken := strings.Fields(authHeader)
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
			abort(c, apperror.NewUnauthenticated("Authorization header must contain two space-delimited values"))
			return
		}

		claims, err := tokens.Parse(bearerToken[1], utils.AccessToken)
		if err != nil {
			abort(c, apperror.NewUnauthenticated(invalidTokenDetail))
			return
		}

		user, err := users.Get(c.Request.Context(), claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			abort(c, apperror.NewUnauthenticated("User not found"))
			return
		}
		if err != nil {
			log.Log.WithError(err).Error("failed to load token user")
			abort(c, apperror.New(apperror.Internal, "Internal server error"))
			return
		}
		if !user.IsActive {
			abort(c, apperror.NewUnauthenticated("User is inactive"))
			return
		}

		utils.SetUser(c, user)
		c.Next()
	}
}

// Require applies a policy at the route level, before any resource is loaded.
// Ownership is checked later by the handler against the loaded resource.
func Require(policy permissions.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := permissions.Authorize(policy, utils.GetUser(c), nil, OperationOf(c.Request.Method)); err != nil {
			var appErr *apperror.Error
			if errors.As(err, &appErr) {
				abort(c, appErr)
				return
			}
			abort(c, apperror.New(apperror.Internal, err.Error()))
			return
		}
		c.Next()
	}
}

// OperationOf maps an HTTP method to the operation it performs.
func OperationOf(method string) permissions.Operation {
	switch method {
	case "POST":
		return permissions.Create
	case "PUT", "PATCH":
		return permissions.Update
	case "DELETE":
		return permissions.Delete
	default:
		return permissions.Read
	}
}

func abort(c *gin.Context, err *apperror.Error) {
	c.AbortWithStatusJSON(err.Kind.Status(), gin.H{"error": err.Detail})
}
