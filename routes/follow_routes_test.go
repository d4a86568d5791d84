package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowTwiceConflicts(t *testing.T) {
	s := newTestServer(t)
	alice, aliceToken := s.user("alice")
	bob, _ := s.user("bob")

	w := s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": bob.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	follow := decode[controllers.FollowResponse](t, w)
	assert.Equal(t, alice.ID, follow.Follower.ID)
	assert.Equal(t, bob.ID, follow.Following.ID)
	assert.Equal(t, "bob", follow.Following.Name)

	w = s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": bob.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You are already following this user", errorOf(t, w))
	assert.Equal(t, int64(1), s.count(&models.Follow{}))
}

func TestFollowValidation(t *testing.T) {
	s := newTestServer(t)
	alice, aliceToken := s.user("alice")

	w := s.do(http.MethodPost, "/follows/", "", map[string]uint{"following_id": alice.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "following_id is required", errorOf(t, w))

	w = s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// following yourself is allowed
	w = s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": alice.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFollowRejectsMistypedFields(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("alice")
	bob, _ := s.user("bob")

	w := s.do(http.MethodPost, "/follows/", token, map[string]string{"following_id": fmt.Sprint(bob.ID)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "following_id: A valid integer is required.", errorOf(t, w))

	w = s.do(http.MethodPost, "/follows/", token, []uint{bob.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid data. Expected a dictionary.", errorOf(t, w))
	assert.Zero(t, s.count(&models.Follow{}))
}

func TestUnfollow(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.user("alice")
	bob, bobToken := s.user("bob")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": bob.ID}).Code)

	// bob does not follow themselves, so there is nothing of theirs to remove
	w := s.do(http.MethodDelete, path("/follows/%d", bob.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, path("/follows/%d", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, s.count(&models.Follow{}))

	w = s.do(http.MethodDelete, path("/follows/%d", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAndGetFollows(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.user("alice")
	bob, _ := s.user("bob")

	w := s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": bob.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[controllers.FollowResponse](t, w)

	w = s.do(http.MethodGet, "/follows/", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]controllers.FollowResponse](t, w), 1)

	w = s.do(http.MethodGet, path("/follows/%d", created.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, bob.ID, decode[controllers.FollowResponse](t, w).Following.ID)

	w = s.do(http.MethodGet, "/follows/999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowersAndFollowing(t *testing.T) {
	s := newTestServer(t)
	alice, aliceToken := s.user("alice")
	bob, bobToken := s.user("bob")
	carol, carolToken := s.user("carol")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/follows/", bobToken, map[string]uint{"following_id": alice.ID}).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/follows/", carolToken, map[string]uint{"following_id": alice.ID}).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/follows/", aliceToken, map[string]uint{"following_id": carol.ID}).Code)

	w := s.do(http.MethodGet, path("/users/followers/%d", alice.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	followers := decode[[]controllers.PartyResponse](t, w)
	require.Len(t, followers, 2)
	assert.ElementsMatch(t,
		[]controllers.PartyResponse{{ID: bob.ID, Name: "bob"}, {ID: carol.ID, Name: "carol"}},
		followers)

	w = s.do(http.MethodGet, path("/users/following/%d", alice.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []controllers.PartyResponse{{ID: carol.ID, Name: "carol"}}, decode[[]controllers.PartyResponse](t, w))

	w = s.do(http.MethodGet, path("/users/following/%d", bob.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
