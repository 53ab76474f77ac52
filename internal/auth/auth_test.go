package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "battery staple"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	viewer, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, blog.Viewer{UserID: 7, Username: "alice"}, viewer)
}

func TestTokenRejected(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokens("other", time.Hour).Parse(raw)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokens("secret", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(raw)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.Error(t, err)
	})
}

func newRouter(tokens *Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(tokens))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": ViewerFrom(c).UserID})
	})
	r.GET("/private/", RequireLogin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddlewareResolvesViewer(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := newRouter(tokens)
	raw, err := tokens.Issue(3, "bob")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: raw})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user_id":3}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user_id":3}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())
}

func TestRequireLoginRedirects(t *testing.T) {
	r := newRouter(NewTokens("secret", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/private/", w.Header().Get("Location"))
}

func TestLoginURL(t *testing.T) {
	tests := []struct {
		target, want string
	}{
		{"/posts/create/", "/auth/login/?next=/posts/create/"},
		{"/posts/3/edit_comment/7/", "/auth/login/?next=/posts/3/edit_comment/7/"},
		{"/?page=2", "/auth/login/?next=/%3Fpage%3D2"},
		{"/profile/a b/", "/auth/login/?next=/profile/a+b/"},
	}
	for _, tt := range tests {
		got := LoginURL(tt.target)
		assert.Equal(t, tt.want, got)

		u, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, tt.target, u.Query().Get("next"), "next must decode back to the target")
	}
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/posts/1/", SafeNext("/posts/1/", "/"))
	assert.Equal(t, "/", SafeNext("", "/"))
	assert.Equal(t, "/", SafeNext("https://evil.example", "/"))
	assert.Equal(t, "/", SafeNext("//evil.example", "/"))
}
