package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Get(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, wrap(err, "get comment")
	}
	return &comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("Author").
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, wrap(err, "list comments")
	}
	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return wrap(r.db.WithContext(ctx).Omit(noAssociations).Create(comment).Error, "create comment")
}

func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return wrap(r.db.WithContext(ctx).Omit(noAssociations).Save(comment).Error, "update comment")
}

func (r *CommentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	return wrap(r.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error, "delete comment")
}
