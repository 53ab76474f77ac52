package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
)

type CategoryHandler struct {
	svc *blog.Service
	responder
}

func NewCategoryHandler(svc *blog.Service, r responder) *CategoryHandler {
	return &CategoryHandler{svc: svc, responder: r}
}

// CategoryPosts lists the public posts of a published category. Unpublished
// categories are 404 for everyone, their authors included.
func (h *CategoryHandler) CategoryPosts(c *gin.Context) {
	scope := blog.CategoryScope(c.Param("slug"))
	listing, err := h.svc.ListPosts(c.Request.Context(), scope, auth.ViewerFrom(c), pageParam(c))
	if err != nil {
		h.fail(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, listing)
}
