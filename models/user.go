package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Mobile    string    `gorm:"not null;size:15" json:"mobile"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never plaintext
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
}
