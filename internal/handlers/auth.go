package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/forms"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type AuthHandler struct {
	users  blog.UserRepository
	tokens *auth.Tokens
	responder
}

func NewAuthHandler(users blog.UserRepository, tokens *auth.Tokens, r responder) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, responder: r}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": forms.SignupForm{}})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.SignupForm
	if err := forms.Decode(c.Request, &form); err != nil {
		h.badForm(c, err)
		return
	}
	if err := form.Validate(); err != nil {
		h.invalid(c, err, form.Redacted())
		return
	}

	// Check if username already exists
	_, err := h.users.GetByUsername(c.Request.Context(), form.Username)
	switch {
	case err == nil:
		h.invalid(c, blog.UsernameTaken(), form.Redacted())
		return
	case !errors.Is(err, blog.ErrNotFound):
		h.fail(c, err, 0)
		return
	}

	hashed, err := auth.HashPassword(form.Password)
	if err != nil {
		h.fail(c, err, 0)
		return
	}

	user := models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hashed,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, blog.ErrConflict) {
			h.invalid(c, blog.UsernameTaken(), form.Redacted())
			return
		}
		h.fail(c, err, 0)
		return
	}

	c.Redirect(http.StatusFound, auth.LoginPath)
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": forms.LoginForm{Next: c.Query("next")}})
}

// Login checks the credentials, sets the session cookie and continues to next.
func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := forms.Decode(c.Request, &form); err != nil {
		h.badForm(c, err)
		return
	}
	if form.Next == "" {
		form.Next = c.Query("next")
	}
	if err := form.Validate(); err != nil {
		h.invalid(c, err, form.Redacted())
		return
	}

	invalidCredentials := validation.Errors{"username": errors.New("invalid username or password")}

	user, err := h.users.GetByUsername(c.Request.Context(), form.Username)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			h.invalid(c, invalidCredentials, form.Redacted())
			return
		}
		h.fail(c, err, 0)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, form.Password); err != nil {
		h.invalid(c, invalidCredentials, form.Redacted())
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	auth.SetSession(c, h.tokens, token)
	c.Redirect(http.StatusFound, auth.SafeNext(form.Next, "/"))
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	viewer := auth.ViewerFrom(c)
	if !viewer.IsAuthenticated() {
		h.fail(c, blog.ErrUnauthenticated, 0)
		return
	}
	user, err := h.users.Get(c.Request.Context(), viewer.UserID)
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
