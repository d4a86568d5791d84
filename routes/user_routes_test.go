package routes

import (
	"net/http"
	"strings"
	"testing"

	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/users/", "", map[string]string{"password": "p", "name": "A", "mobile": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email: This field is required.", errorOf(t, w))

	w = s.do(http.MethodPost, "/users/", "", map[string]string{"email": "nope", "password": "p", "name": "A", "mobile": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email: Enter a valid email address.", errorOf(t, w))

	w = s.do(http.MethodPost, "/users/", "", map[string]string{"email": "a@x.com", "password": "p", "name": "A", "mobile": "1234567890123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "mobile: Ensure this field has no more than 15 characters.", errorOf(t, w))
	assert.Zero(t, s.count(&models.User{}))
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"email": "a@x.com", "password": "p", "name": "A", "mobile": "1"}

	w := s.do(http.MethodPost, "/users/", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	// the domain is normalized, so this is the same address
	body["email"] = "a@X.COM"
	w = s.do(http.MethodPost, "/users/", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email: user with this email already exists.", errorOf(t, w))
	assert.Equal(t, int64(1), s.count(&models.User{}))
}

func TestGetAndListUsers(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.user("alice")
	s.user("bob")

	w := s.do(http.MethodGet, "/users/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]controllers.UserResponse](t, w), 2)

	w = s.do(http.MethodGet, path("/users/%d", alice.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[controllers.UserResponse](t, w).Name)

	w = s.do(http.MethodGet, "/users/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.user("alice")

	w := s.do(http.MethodPatch, path("/users/%d", alice.ID), "", map[string]string{"name": "Alicia"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPatch, path("/users/%d", alice.ID), token, map[string]string{"name": "Alicia"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[controllers.UserResponse](t, w)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	// PUT is a full update
	w = s.do(http.MethodPut, path("/users/update/%d", alice.ID), token, map[string]string{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, path("/users/update/%d", alice.ID), token, map[string]string{
		"email": "alice@EXAMPLE.org", "name": "A", "mobile": "2", "password": "new-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "alice@example.org", decode[controllers.UserResponse](t, w).Email)

	var stored models.User
	require.NoError(t, s.db.First(&stored, alice.ID).Error)
	assert.True(t, utils.CheckPassword(stored.Password, "new-password"))
}

func TestUserPasswordLengthLimit(t *testing.T) {
	s := newTestServer(t)
	tooLong := strings.Repeat("p", utils.MaxPasswordBytes+1)

	w := s.do(http.MethodPost, "/users/", "", map[string]string{"email": "z@x.com", "name": "Z", "mobile": "1", "password": tooLong})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password: Ensure this field has no more than 72 bytes.", errorOf(t, w))
	assert.Zero(t, s.count(&models.User{}))

	// the limit is in bytes, so multi-byte characters count for more
	w = s.do(http.MethodPost, "/users/", "", map[string]string{"email": "z@x.com", "name": "Z", "mobile": "1", "password": strings.Repeat("é", 37)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/users/", "", map[string]string{"email": "z@x.com", "name": "Z", "mobile": "1", "password": strings.Repeat("p", utils.MaxPasswordBytes)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	alice, token := s.user("alice")
	w = s.do(http.MethodPatch, path("/users/%d", alice.ID), token, map[string]string{"password": tooLong})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password: Ensure this field has no more than 72 bytes.", errorOf(t, w))

	var stored models.User
	require.NoError(t, s.db.First(&stored, alice.ID).Error)
	assert.True(t, utils.CheckPassword(stored.Password, "password"))
}

func TestUpdateUserWithEmptyBody(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.user("alice")

	w := s.do(http.MethodPatch, path("/users/%d", alice.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "alice", decode[controllers.UserResponse](t, w).Name)

	w = s.do(http.MethodPut, path("/users/%d", alice.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email: This field is required.", errorOf(t, w))

	// binding tags still apply to an empty create
	w = s.do(http.MethodPost, "/users/", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email: This field is required.", errorOf(t, w))
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.user("alice")
	s.user("bob")

	w := s.do(http.MethodPatch, path("/users/%d", alice.ID), token, map[string]string{"email": "bob@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// keeping your own address is fine
	w = s.do(http.MethodPatch, path("/users/%d", alice.ID), token, map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestServer(t)
	alice, aliceToken := s.user("alice")
	bob, bobToken := s.user("bob")

	discussionID := s.createDiscussion(aliceToken, "hello", "#a")
	commentID := s.createComment(bobToken, discussionID, "hi alice")
	s.createReply(aliceToken, commentID, "hi bob")
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/follows/", bobToken, map[string]uint{"following_id": alice.ID}).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": bob.ID}).Code)
	bobsDiscussion := s.createDiscussion(bobToken, "mine", "")
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/likes/", aliceToken, map[string]uint{"discussion": bobsDiscussion}).Code)

	w := s.do(http.MethodDelete, path("/users/delete/%d", alice.ID), bobToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, int64(1), s.count(&models.User{}))
	assert.Equal(t, int64(1), s.count(&models.Discussion{}))
	assert.Zero(t, s.count(&models.Comment{}))
	assert.Zero(t, s.count(&models.Reply{}))
	assert.Zero(t, s.count(&models.Follow{}))
	assert.Zero(t, s.count(&models.Like{}))

	w = s.do(http.MethodDelete, path("/users/%d", alice.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchUsers(t *testing.T) {
	s := newTestServer(t)
	s.user("alice")
	s.user("malice")
	s.user("bob")

	w := s.do(http.MethodGet, "/users/search?name=ALI", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]controllers.UserResponse](t, w)
	require.Len(t, found, 2)
	assert.Equal(t, "alice", found[0].Name)
	assert.Equal(t, "malice", found[1].Name)

	w = s.do(http.MethodGet, "/users/search?name=zzz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]controllers.UserResponse](t, w))

	w = s.do(http.MethodGet, "/users/search", "", nil)
	assert.Len(t, decode[[]controllers.UserResponse](t, w), 3)
}

func TestValidateEmail(t *testing.T) {
	s := newTestServer(t)
	s.user("alice")

	w := s.do(http.MethodGet, "/validation/email/alice@EXAMPLE.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[controllers.ExistsResponse](t, w).Exists)

	w = s.do(http.MethodGet, "/validation/email/bob@example.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[controllers.ExistsResponse](t, w).Exists)
}
