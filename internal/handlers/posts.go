package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/forms"
)

type PostHandler struct {
	svc *blog.Service
	responder
}

func NewPostHandler(svc *blog.Service, r responder) *PostHandler {
	return &PostHandler{svc: svc, responder: r}
}

// Index lists public posts, newest first.
func (h *PostHandler) Index(c *gin.Context) {
	listing, err := h.svc.ListPosts(c.Request.Context(), blog.IndexScope(), auth.ViewerFrom(c), pageParam(c))
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetPost returns a single post with its comments
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	viewer := auth.ViewerFrom(c)

	post, err := h.svc.GetPostDetail(c.Request.Context(), id, viewer)
	if err != nil {
		h.fail(c, err, id)
		return
	}
	comments, err := h.svc.ListComments(c.Request.Context(), post)
	if err != nil {
		h.fail(c, err, id)
		return
	}

	resp := gin.H{
		"post":     post,
		"comments": comments,
	}
	if viewer.IsAuthenticated() {
		resp["form"] = forms.CommentForm{}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) choices(c *gin.Context) (*blog.Choices, bool) {
	choices, err := h.svc.FormChoices(c.Request.Context())
	if err != nil {
		h.fail(c, err, 0)
		return nil, false
	}
	return choices, true
}

// NewPostForm returns an empty post form with its choices.
func (h *PostHandler) NewPostForm(c *gin.Context) {
	choices, ok := h.choices(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": forms.PostForm{}, "choices": choices})
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	viewer := auth.ViewerFrom(c)

	var form forms.PostForm
	if err := forms.Decode(c.Request, &form); err != nil {
		h.badForm(c, err)
		return
	}
	if err := form.Validate(); err != nil {
		h.invalid(c, err, form)
		return
	}

	if _, err := h.svc.CreatePost(c.Request.Context(), viewer, form.Input()); err != nil {
		if !h.invalid(c, err, form) {
			h.fail(c, err, 0)
		}
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), viewer)
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	c.Redirect(http.StatusFound, ProfileURL(user.Username))
}

// EditPostForm returns the post form pre-filled (PROTECTED - requires ownership)
func (h *PostHandler) EditPostForm(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	post, err := h.svc.EditablePost(c.Request.Context(), auth.ViewerFrom(c), id)
	if err != nil {
		h.fail(c, err, id)
		return
	}
	choices, ok := h.choices(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "form": forms.PostFormFrom(post), "choices": choices})
}

// UpdatePost updates an existing post (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	viewer := auth.ViewerFrom(c)

	// Non-authors are turned away before their submission is looked at.
	if _, err := h.svc.EditablePost(c.Request.Context(), viewer, id); err != nil {
		h.fail(c, err, id)
		return
	}

	var form forms.PostForm
	if err := forms.Decode(c.Request, &form); err != nil {
		h.badForm(c, err)
		return
	}
	if err := form.Validate(); err != nil {
		h.invalid(c, err, form)
		return
	}

	if _, err := h.svc.UpdatePost(c.Request.Context(), viewer, id, form.Input()); err != nil {
		if !h.invalid(c, err, form) {
			h.fail(c, err, id)
		}
		return
	}
	c.Redirect(http.StatusFound, PostURL(id))
}

// DeletePostForm shows the post about to be deleted (PROTECTED - requires ownership)
func (h *PostHandler) DeletePostForm(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	post, err := h.svc.EditablePost(c.Request.Context(), auth.ViewerFrom(c), id)
	if err != nil {
		h.fail(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "form": forms.PostFormFrom(post)})
}

// DeletePost deletes a post (PROTECTED - requires ownership)
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	viewer := auth.ViewerFrom(c)

	if _, err := h.svc.DeletePost(c.Request.Context(), viewer, id); err != nil {
		h.fail(c, err, id)
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), viewer)
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	c.Redirect(http.StatusFound, ProfileURL(user.Username))
}
