package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap(err, "get user")
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrap(err, "get user by username")
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return wrap(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return wrap(r.db.WithContext(ctx).Save(user).Error, "update user")
}
