package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/models"
	"github.com/spyne-social/api-go/permissions"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/testutil"
	"github.com/spyne-social/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *utils.TokenIssuer, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice")
	tokens := utils.NewTokenIssuer("secret", time.Minute, time.Hour)

	r := gin.New()
	r.Use(Authenticate(repository.NewUserRepository(db), tokens))
	r.GET("/whoami", func(c *gin.Context) {
		if u := utils.GetUser(c); u != nil {
			c.JSON(http.StatusOK, gin.H{"id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": 0})
	})
	r.POST("/private", Require(permissions.Authenticated), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens, user
}

func serve(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r, tokens, user := newAuthRouter(t)
	access, err := tokens.Issue(user.ID, utils.AccessToken)
	require.NoError(t, err)
	refresh, err := tokens.Issue(user.ID, utils.RefreshToken)
	require.NoError(t, err)
	ghost, err := tokens.Issue(user.ID+100, utils.AccessToken)
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/whoami", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0}`, w.Body.String())

	w = serve(r, http.MethodGet, "/whoami", "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	for _, header := range []string{"Bearer " + refresh, "Bearer " + ghost, "Token " + access, access, "Bearer junk"} {
		w = serve(r, http.MethodGet, "/whoami", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestRequire(t *testing.T) {
	r, tokens, user := newAuthRouter(t)
	access, err := tokens.Issue(user.ID, utils.AccessToken)
	require.NoError(t, err)

	w := serve(r, http.MethodPost, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication credentials were not provided."}`, w.Body.String())

	w = serve(r, http.MethodPost, "/private", "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, permissions.Read, OperationOf(http.MethodGet))
	assert.Equal(t, permissions.Read, OperationOf(http.MethodHead))
	assert.Equal(t, permissions.Create, OperationOf(http.MethodPost))
	assert.Equal(t, permissions.Update, OperationOf(http.MethodPut))
	assert.Equal(t, permissions.Update, OperationOf(http.MethodPatch))
	assert.Equal(t, permissions.Delete, OperationOf(http.MethodDelete))
}
