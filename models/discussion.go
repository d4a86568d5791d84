package models

import (
	"time"
)

type Discussion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Image     *string   `gorm:"size:512" json:"image"`
	Hashtags  string    `gorm:"type:text;not null;default:''" json:"hashtags"`
	Views     int       `gorm:"not null;default:0" json:"views"`
	CreatedOn time.Time `gorm:"autoCreateTime" json:"created_on"`

	Comments []Comment `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"comments"`
	Likes    []Like    `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (d Discussion) OwnerID() uint { return d.UserID }
