package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, wrap(err, "get category")
	}
	return &category, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, wrap(err, "get category by slug")
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context, publishedOnly bool) ([]models.Category, error) {
	var categories []models.Category
	q := r.db.WithContext(ctx).Order("title")
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, wrap(err, "list categories")
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return wrap(r.db.WithContext(ctx).Create(category).Error, "create category")
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return wrap(r.db.WithContext(ctx).Save(category).Error, "update category")
}
