package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/forms"
)

type UserHandler struct {
	svc    *blog.Service
	tokens *auth.Tokens
	responder
}

func NewUserHandler(svc *blog.Service, tokens *auth.Tokens, r responder) *UserHandler {
	return &UserHandler{svc: svc, tokens: tokens, responder: r}
}

// GetUserProfile returns a user's profile and their posts. The owner of the
// profile also sees their unpublished and scheduled posts.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	scope := blog.AuthorScope(c.Param("username"))
	listing, err := h.svc.ListPosts(c.Request.Context(), scope, auth.ViewerFrom(c), pageParam(c))
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *UserHandler) EditProfileForm(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), auth.ViewerFrom(c))
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": forms.ProfileFormFrom(user)})
}

// UpdateUserProfile edits the viewer's own profile and refreshes their session.
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	var form forms.ProfileForm
	if err := forms.Decode(c.Request, &form); err != nil {
		h.badForm(c, err)
		return
	}
	if err := form.Validate(); err != nil {
		h.invalid(c, err, form)
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), auth.ViewerFrom(c), form.Input())
	if err != nil {
		if !h.invalid(c, err, form) {
			h.fail(c, err, 0)
		}
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	auth.SetSession(c, h.tokens, token)
	c.Redirect(http.StatusFound, ProfileURL(user.Username))
}
