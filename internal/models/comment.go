package models

import "time"

type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	AuthorID  int       `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	PostID    int       `gorm:"not null;index" json:"post_id"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
