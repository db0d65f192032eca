package models

import "time"

// Video is only referenced here: comments check that it exists.
type Video struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Video) TableName() string {
	return "videos"
}
