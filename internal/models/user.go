package models

import "time"

type User struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"unique;not null;size:150" json:"username"`
	FirstName    string `gorm:"size:150" json:"first_name"`
	LastName     string `gorm:"size:150" json:"last_name"`
	Email        string `gorm:"size:254" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
