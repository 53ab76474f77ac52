package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

const postColumns = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Select(postColumns).
		Preload("Author").
		Preload("Category").
		Preload("Location")
}

func (r *PostRepository) Get(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.withRelations(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, wrap(err, "get post")
	}
	return &post, nil
}

// filterScope expresses blog.PostFilter as SQL. The visibility condition must
// match blog.IsPubliclyVisible.
func filterScope(filter blog.PostFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.AuthorID != nil {
			db = db.Where("posts.author_id = ?", *filter.AuthorID)
		}
		if filter.CategoryID != nil {
			db = db.Where("posts.category_id = ?", *filter.CategoryID)
		}
		if filter.VisibleAt != nil {
			db = db.Where("posts.is_published = ?", true).
				Where("posts.pub_date <= ?", filter.VisibleAt.UTC()).
				Where("(posts.category_id IS NULL OR posts.category_id IN (?))",
					db.Session(&gorm.Session{NewDB: true}).
						Model(&models.Category{}).
						Select("id").
						Where("is_published = ?", true))
		}
		return db
	}
}

func (r *PostRepository) List(ctx context.Context, filter blog.PostFilter) ([]models.Post, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Scopes(filterScope(filter)).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, wrap(err, "count posts")
	}

	var posts []models.Post
	q := r.withRelations(base).Order("posts.pub_date DESC").Order("posts.id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, 0, wrap(err, "list posts")
	}
	return posts, total, nil
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return wrap(r.db.WithContext(ctx).Omit(noAssociations).Create(post).Error, "create post")
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return wrap(r.db.WithContext(ctx).Omit(noAssociations).Save(post).Error, "update post")
}

// Delete removes the post together with its comments.
func (r *PostRepository) Delete(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	return wrap(err, "delete post")
}
