package routes

import (
	"net/http"
	"testing"

	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginPostAndRead(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/users/", "", map[string]string{
		"email": "a@x.com", "password": "p", "name": "A", "mobile": "1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[controllers.UserResponse](t, w)
	require.NotZero(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(http.MethodPost, "/token/", "", map[string]string{"email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pair := decode[utils.TokenPair](t, w)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	w = s.do(http.MethodPost, "/discussions/", pair.Access, map[string]string{"text": "hi", "hashtags": "#intro"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[controllers.DiscussionResponse](t, w)
	assert.Equal(t, 0, created.Views)
	assert.Equal(t, user.ID, created.User)
	assert.Equal(t, "#intro", created.Hashtags)
	assert.Empty(t, created.Comments)

	w = s.do(http.MethodGet, path("/discussions/%d", created.ID), pair.Access, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[controllers.DiscussionResponse](t, w).Views)
}

func TestObtainTokenRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.user("alice")

	w := s.do(http.MethodPost, "/token/", "", map[string]string{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid login credentials", errorOf(t, w))

	w = s.do(http.MethodPost, "/token/", "", map[string]string{"email": "nobody@example.com", "password": "password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/token/", "", map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password: This field is required.", errorOf(t, w))
}

func TestObtainTokenRejectsInactiveUser(t *testing.T) {
	s := newTestServer(t)
	user, token := s.user("alice")
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	w := s.do(http.MethodPost, "/token/", "", map[string]string{"email": "alice@example.com", "password": "password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/discussions/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken(t *testing.T) {
	s := newTestServer(t)
	user, access := s.user("alice")
	pair, err := s.tokens.IssuePair(user.ID)
	require.NoError(t, err)

	w := s.do(http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refreshed := decode[controllers.AccessResponse](t, w)
	require.NotEmpty(t, refreshed.Access)

	w = s.do(http.MethodGet, "/discussions/", refreshed.Access, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// an access token is not a refresh token
	w = s.do(http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidBearerToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/users/", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// anonymous access to a public route still works
	w = s.do(http.MethodGet, "/users/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
