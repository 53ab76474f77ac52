package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
	"github.com/emilythestrangee/blogicum/backend/internal/store"
	"github.com/emilythestrangee/blogicum/backend/internal/testutil"
)

// lateSignup misses usernames on lookup, as when a concurrent signup
// commits between the check and the insert.
type lateSignup struct {
	blog.UserRepository
}

func (lateSignup) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, blog.ErrNotFound
}

func TestRegisterUsernameClaimedConcurrently(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	testutil.NewFixtures(t, db.GetDB()).User("newbie")

	users := lateSignup{store.New(db.GetDB()).Users}
	h := NewAuthHandler(users, auth.NewTokens("secret", time.Hour), responder{logger: testutil.Logger()})
	r := gin.New()
	r.POST("/auth/registration/", h.Register)

	form := url.Values{"username": {"newbie"}, "password": {"correct horse"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/registration/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "username")
	assert.NotContains(t, w.Body.String(), "correct horse")
}
