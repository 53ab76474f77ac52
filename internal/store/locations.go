package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Get(ctx context.Context, id int) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, wrap(err, "get location")
	}
	return &location, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).Order("name").Find(&locations).Error; err != nil {
		return nil, wrap(err, "list locations")
	}
	return locations, nil
}

func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	return wrap(r.db.WithContext(ctx).Create(location).Error, "create location")
}
