package models

import (
	"time"
)

type Comment struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DiscussionID uint      `gorm:"not null;index" json:"discussion"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedOn    time.Time `gorm:"autoCreateTime" json:"created_on"`

	Replies []Reply       `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	Likes   []CommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c Comment) OwnerID() uint { return c.UserID }
