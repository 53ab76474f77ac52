package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/forms"
)

type CommentHandler struct {
	svc *blog.Service
	responder
}

func NewCommentHandler(svc *blog.Service, r responder) *CommentHandler {
	return &CommentHandler{svc: svc, responder: r}
}

// ids reads the post and comment ids from the path.
func ids(c *gin.Context) (postID, commentID int, ok bool) {
	if postID, ok = intParam(c, "id"); !ok {
		return 0, 0, false
	}
	if commentID, ok = intParam(c, "comment_id"); !ok {
		return 0, 0, false
	}
	return postID, commentID, true
}

// CommentForm has no page of its own; the form lives on the post detail.
func (h *CommentHandler) CommentForm(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, PostURL(postID))
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var form forms.CommentForm
	if err := forms.Decode(c.Request, &form); err != nil {
		h.badForm(c, err)
		return
	}
	if err := form.Validate(); err != nil {
		h.invalid(c, err, form)
		return
	}

	if _, err := h.svc.CreateComment(c.Request.Context(), auth.ViewerFrom(c), postID, form.Text); err != nil {
		h.fail(c, err, postID)
		return
	}
	c.Redirect(http.StatusFound, PostURL(postID))
}

// EditCommentForm returns the comment form pre-filled (owner only)
func (h *CommentHandler) EditCommentForm(c *gin.Context) {
	postID, commentID, ok := ids(c)
	if !ok {
		return
	}
	comment, err := h.svc.EditableComment(c.Request.Context(), auth.ViewerFrom(c), postID, commentID)
	if err != nil {
		h.fail(c, err, postID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment, "form": forms.CommentForm{Text: comment.Text}})
}

// UpdateComment updates a comment (owner only)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	postID, commentID, ok := ids(c)
	if !ok {
		return
	}
	viewer := auth.ViewerFrom(c)

	if _, err := h.svc.EditableComment(c.Request.Context(), viewer, postID, commentID); err != nil {
		h.fail(c, err, postID)
		return
	}

	var form forms.CommentForm
	if err := forms.Decode(c.Request, &form); err != nil {
		h.badForm(c, err)
		return
	}
	if err := form.Validate(); err != nil {
		h.invalid(c, err, form)
		return
	}

	if _, err := h.svc.UpdateComment(c.Request.Context(), viewer, postID, commentID, form.Text); err != nil {
		h.fail(c, err, postID)
		return
	}
	c.Redirect(http.StatusFound, PostURL(postID))
}

// DeleteCommentForm shows the comment about to be deleted (owner only)
func (h *CommentHandler) DeleteCommentForm(c *gin.Context) {
	postID, commentID, ok := ids(c)
	if !ok {
		return
	}
	comment, err := h.svc.EditableComment(c.Request.Context(), auth.ViewerFrom(c), postID, commentID)
	if err != nil {
		h.fail(c, err, postID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment deletes a comment (owner only)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, commentID, ok := ids(c)
	if !ok {
		return
	}
	if _, err := h.svc.DeleteComment(c.Request.Context(), auth.ViewerFrom(c), postID, commentID); err != nil {
		h.fail(c, err, postID)
		return
	}
	c.Redirect(http.StatusFound, PostURL(postID))
}
