package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type page struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var staticPages = map[string]page{
	"about": {
		Title: "About",
		Text:  "Blogicum is a place to write about the places you have been.",
	},
	"rules": {
		Title: "Rules",
		Text:  "Be kind. Write about what you saw yourself. Only authors may change their own posts and comments.",
	},
}

type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Page serves a static page; the name is bound at route registration.
func (h *PagesHandler) Page(name string) gin.HandlerFunc {
	p := staticPages[name]
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p)
	}
}
