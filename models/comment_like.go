package models

import (
	"time"
)

// CommentLike carries no storage-level uniqueness; duplicate prevention is
// an application policy (see config.LikePolicy).
type CommentLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CommentID uint      `gorm:"not null;index" json:"comment"`
	CreatedOn time.Time `gorm:"autoCreateTime" json:"created_on"`
}

func (l CommentLike) OwnerID() uint { return l.UserID }
