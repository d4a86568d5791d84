package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		Validation:      http.StatusBadRequest,
		Unauthenticated: http.StatusUnauthorized,
		Forbidden:       http.StatusForbidden,
		NotFound:        http.StatusNotFound,
		Conflict:        http.StatusConflict,
		Internal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("creating like: %w", NewConflict("You have already liked this discussion"))

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, Conflict, appErr.Kind)
	assert.Equal(t, "conflict: You have already liked this discussion", appErr.Error())
}
