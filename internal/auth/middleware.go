package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
)

const (
	CookieName = "session"
	LoginPath  = "/auth/login/"

	viewerKey = "viewer"
)

// Middleware resolves the viewer from the session cookie or a bearer token.
// Requests with no valid token continue as anonymous.
func Middleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := blog.Anonymous
		if raw := tokenFromRequest(c.Request); raw != "" {
			if v, err := tokens.Parse(raw); err == nil {
				viewer = v
			}
		}
		c.Set(viewerKey, viewer)
		if viewer.IsAuthenticated() {
			c.Set("user_id", viewer.UserID)
		}
		c.Next()
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// ViewerFrom returns the viewer stored by Middleware.
func ViewerFrom(c *gin.Context) blog.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(blog.Viewer); ok {
			return viewer
		}
	}
	return blog.Anonymous
}

// LoginURL is the login page with next pointing back at target. Slashes in
// next stay readable; everything else is query-escaped.
func LoginURL(target string) string {
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(target), "%2F", "/")
}

// RequireLogin redirects anonymous viewers to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ViewerFrom(c).IsAuthenticated() {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SafeNext returns next if it is a local path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

func SetSession(c *gin.Context, tokens *Tokens, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(tokens.TTL().Seconds()), "/", "", false, true)
}

func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
