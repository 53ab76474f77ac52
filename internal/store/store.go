// Package store implements the blog repositories on top of gorm.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
)

// New returns gorm-backed implementations of every blog repository.
func New(db *gorm.DB) blog.Repositories {
	return blog.Repositories{
		Posts:      NewPostRepository(db),
		Categories: NewCategoryRepository(db),
		Locations:  NewLocationRepository(db),
		Comments:   NewCommentRepository(db),
		Users:      NewUserRepository(db),
	}
}

// wrap translates gorm's sentinel errors into the blog ones, keeping the
// original as the cause.
func wrap(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return blog.WrapStatus(blog.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return blog.WrapStatus(blog.ErrConflict, fmt.Errorf("%s: %w", what, err))
	}
	return fmt.Errorf("%s: %w", what, err)
}

// noAssociations keeps Save and Create from upserting preloaded relations.
var noAssociations = clause.Associations
