package models

import "time"

type Location struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:256" json:"name"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
