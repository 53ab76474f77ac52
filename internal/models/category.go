package models

import "time"

// Category groups posts. An unpublished category hides all of its posts from
// public listings and makes its own listing page unavailable.
type Category struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:256" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null;size:64" json:"slug"`
	Description string    `gorm:"not null" json:"description"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
