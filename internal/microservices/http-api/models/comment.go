package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	VideoID   string    `json:"video" gorm:"type:uuid;not null;index:idx_comments_video_created,priority:1"`
	OwnerID   string    `json:"owner" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index:idx_comments_video_created,priority:2,sort:desc"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate assigns the server-side identifier.
func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}
