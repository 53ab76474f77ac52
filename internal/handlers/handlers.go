package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Post     *PostHandler
	Comment  *CommentHandler
	User     *UserHandler
	Category *CategoryHandler
	Pages    *PagesHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc *blog.Service, users blog.UserRepository, tokens *auth.Tokens, logger *slog.Logger) *Handler {
	r := responder{logger: logger}
	return &Handler{
		Auth:     NewAuthHandler(users, tokens, r),
		Post:     NewPostHandler(svc, r),
		Comment:  NewCommentHandler(svc, r),
		User:     NewUserHandler(svc, tokens, r),
		Category: NewCategoryHandler(svc, r),
		Pages:    NewPagesHandler(),
	}
}

func PostURL(id int) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// responder turns service errors into responses.
type responder struct {
	logger *slog.Logger
}

// fail maps err onto the web boundary: hidden or missing records are 404,
// anonymous mutations go to the login page, and non-authors are sent back to
// the post they tried to change.
func (r responder) fail(c *gin.Context, err error, postID int) {
	switch blog.ErrorCode(err) {
	case http.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": blog.ErrorText(err)})
	case http.StatusUnauthorized:
		c.Redirect(http.StatusFound, auth.LoginURL(c.Request.URL.RequestURI()))
	case http.StatusForbidden:
		c.Redirect(http.StatusFound, PostURL(postID))
	default:
		_ = c.Error(err)
		r.logger.ErrorContext(c.Request.Context(), "Request failed",
			slog.String("path", c.Request.URL.Path), slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": blog.ErrorText(err)})
	}
}

// invalid reports validation errors with the submitted form echoed back.
// It returns false when err is not a validation error.
func (r responder) invalid(c *gin.Context, err error, form any) bool {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": verrs, "form": form})
	return true
}

func (r responder) badForm(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// intParam reads a numeric path parameter; anything else is a 404.
func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": blog.ErrNotFound.Text})
		return 0, false
	}
	return id, true
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}
