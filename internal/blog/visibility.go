package blog

import (
	"time"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

// IsPubliclyVisible reports whether anyone may see the post: it is published,
// its publication date has passed and its category (if any) is published.
//
// A post whose category was not loaded is treated as uncategorised; callers
// that filter in Go must preload Category.
func IsPubliclyVisible(post *models.Post, now time.Time) bool {
	if post == nil || !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID != nil && (post.Category == nil || !post.Category.IsPublished) {
		return false
	}
	return true
}

// IsPostVisible adds the author override to IsPubliclyVisible.
func IsPostVisible(post *models.Post, viewer Viewer, now time.Time) bool {
	if post == nil {
		return false
	}
	if viewer.Is(post.AuthorID) {
		return true
	}
	return IsPubliclyVisible(post, now)
}
