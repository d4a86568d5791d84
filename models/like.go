package models

import (
	"time"
)

// Like is unique per (user, discussion) at the storage level.
type Like struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_like_user_discussion" json:"user"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DiscussionID uint      `gorm:"not null;uniqueIndex:idx_like_user_discussion;index" json:"discussion"`
	CreatedOn    time.Time `gorm:"autoCreateTime" json:"created_on"`
}

func (l Like) OwnerID() uint { return l.UserID }
