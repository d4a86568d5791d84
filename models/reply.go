package models

import (
	"time"
)

type Reply struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CommentID uint      `gorm:"not null;index" json:"comment"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedOn time.Time `gorm:"autoCreateTime" json:"created_on"`
}

func (r Reply) OwnerID() uint { return r.UserID }
