package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/utils"
	"github.com/spyne-social/api-go/utils/log"
)

type validatable interface {
	Validate() error
}

// bindJSON decodes the body into req, applies its binding tags and then its
// own Validate rules. An empty body decodes as an empty request.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if !errors.Is(err, io.EOF) {
			return bindingError(err)
		}
		if err := binding.Validator.ValidateStruct(req); err != nil {
			return bindingError(err)
		}
	}
	if v, ok := req.(validatable); ok {
		return v.Validate()
	}
	return nil
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			return apperror.NewValidation(field + ": This field is required.")
		case "email":
			return apperror.NewValidation(field + ": Enter a valid email address.")
		case "max":
			return apperror.NewValidation(fmt.Sprintf("%s: Ensure this field has no more than %s characters.", field, fe.Param()))
		default:
			return apperror.NewValidation(field + ": Invalid value.")
		}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// an empty field means the body itself is not an object
		if typeErr.Field == "" {
			return apperror.NewValidation("Invalid data. Expected a dictionary.")
		}
		return apperror.NewValidation(typeErr.Field + ": " + typeMismatchDetail(typeErr.Type))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperror.NewValidation("JSON parse error - " + syntaxErr.Error())
	}
	return apperror.NewValidation("Malformed request body.")
}

func typeMismatchDetail(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Must be a valid boolean."
	default:
		return "Invalid value."
	}
}

// jsonFieldName maps a Go field name to its snake_case json key.
func jsonFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !strings.HasSuffix(field[:i], "I") {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// respondError writes err as {"error": detail} with the status of its kind.
// Anything that is not an apperror or a known repository error is a 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, repository.ErrNotFound):
		appErr = apperror.NewNotFound("Not found.")
	case errors.Is(err, repository.ErrDuplicate):
		appErr = apperror.NewConflict("Duplicate record.")
	default:
		log.Log.WithError(err).WithField("route", c.FullPath()).Error("request failed with internal error")
		appErr = apperror.New(apperror.Internal, "Internal server error")
	}
	c.AbortWithStatusJSON(appErr.Kind.Status(), gin.H{"error": appErr.Detail})
}

// pathID reads the ":id" style parameter name, failing with 404 as an
// unresolvable id would.
func pathID(c *gin.Context, name string) (uint, error) {
	id, ok := utils.ParseIDParam(c, name)
	if !ok {
		return 0, apperror.NewNotFound("Not found.")
	}
	return id, nil
}

// authorize applies policy to a loaded resource for the request's operation.
func authorize(c *gin.Context, policy permissions.Policy, resource permissions.Owned, op permissions.Operation) error {
	return permissions.Authorize(policy, utils.GetUser(c), resource, op)
}

// callerID returns the authenticated user id. Routes using it are guarded by a
// policy that requires one.
func callerID(c *gin.Context) uint {
	if user := utils.GetUser(c); user != nil {
		return user.ID
	}
	return 0
}

func isPut(c *gin.Context) bool {
	return c.Request.Method == http.MethodPut
}

func deleted(c *gin.Context, id uint, message string) {
	c.JSON(http.StatusNoContent, DeletedResponse{ID: id, Message: message})
}

func invalidPK(id uint) error {
	return apperror.NewValidation(fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
